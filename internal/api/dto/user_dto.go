package dto

// UserUpdateRequest 更新用户请求
type UserUpdateRequest struct {
	Login *string `json:"login" binding:"omitempty,min=3,max=30"`
	Email *string `json:"email" binding:"omitempty,email,max=255"`
}

// UserListData 用户列表数据（管理员接口）
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
