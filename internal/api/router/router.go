package router

import (
	"plume-go/internal/api/handler"
	"plume-go/internal/api/middleware"
	"plume-go/internal/config"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	blogHandler *handler.BlogHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	searchHandler *handler.SearchHandler,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	rateLimitCfg := config.GetRateLimit()

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		// 注册和登录接口限流，防止暴力破解
		limited := auth.Group("", middleware.RateLimit(rateLimitCfg.Requests, rateLimitCfg.Window()))
		{
			limited.POST("/register", authHandler.Register)
			limited.POST("/login", authHandler.Login)
		}

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.GET("/me", authHandler.Me)
		}
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.GET("/:id", userHandler.GetUser)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.PUT("/:id", userHandler.UpdateUser)

			// 管理员接口
			admin := usersAuth.Group("", adminMiddleware)
			{
				admin.GET("", userHandler.ListUsers)
				admin.DELETE("/:id", userHandler.DeleteUser)
				admin.POST("/:id/restore", userHandler.RestoreUser)
				admin.POST("/:id/set-admin", userHandler.SetAdmin)
			}
		}
	}

	// --- 博客模块 ---
	blogs := v1.Group("/blogs")
	{
		// 公开接口（不需要登录）
		blogs.GET("", blogHandler.ListBlogs)
		blogs.GET("/:id", blogHandler.GetBlog)
		blogs.GET("/:id/posts", middleware.AuthOptional(), postHandler.ListBlogPosts)

		// 需要登录的接口
		blogsAuth := blogs.Group("", middleware.AuthRequired())
		{
			blogsAuth.POST("", blogHandler.CreateBlog)
			blogsAuth.GET("/my/list", blogHandler.GetMyBlogs)
			blogsAuth.PUT("/:id", blogHandler.UpdateBlog)
			blogsAuth.DELETE("/:id", blogHandler.DeleteBlog)
			blogsAuth.POST("/:id/wallpaper", blogHandler.UploadWallpaper)
			blogsAuth.POST("/:id/posts", postHandler.CreatePost)

			blogsAuth.POST("/:id/subscription", subscriptionHandler.Subscribe)
			blogsAuth.DELETE("/:id/subscription", subscriptionHandler.Unsubscribe)
			blogsAuth.GET("/:id/subscription", subscriptionHandler.GetStatus)
		}
	}

	// --- 帖子模块 ---
	posts := v1.Group("/posts")
	{
		// 匿名可读，登录用户的点赞视图带 MyStatus
		posts.GET("", middleware.AuthOptional(), postHandler.ListPosts)
		posts.GET("/:id", middleware.AuthOptional(), postHandler.GetPost)
		posts.GET("/:id/comments", middleware.AuthOptional(), commentHandler.ListPostComments)

		postsAuth := posts.Group("", middleware.AuthRequired())
		{
			postsAuth.PUT("/:id", postHandler.UpdatePost)
			postsAuth.DELETE("/:id", postHandler.DeletePost)
			postsAuth.POST("/:id/comments", commentHandler.CreateComment)
			postsAuth.PUT("/:id/like-status", likeHandler.SetPostLikeStatus)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:id", middleware.AuthOptional(), commentHandler.GetComment)

		commentsAuth := comments.Group("", middleware.AuthRequired())
		{
			commentsAuth.GET("/my/list", commentHandler.GetMyComments)
			commentsAuth.PUT("/:id", commentHandler.UpdateComment)
			commentsAuth.DELETE("/:id", commentHandler.DeleteComment)
			commentsAuth.PUT("/:id/like-status", likeHandler.SetCommentLikeStatus)
		}
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", middleware.AuthRequired())
	{
		subscriptions.GET("/my/list", subscriptionHandler.GetMySubscriptions)
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/posts", searchHandler.SearchPosts)
	}
}
