package model

import "testing"

func TestLikeStatusValid(t *testing.T) {
	valid := []LikeStatus{StatusNone, StatusLike, StatusDislike}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	invalid := []LikeStatus{"", "like", "NONE", "Super"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestParentTypeValid(t *testing.T) {
	if !ParentPost.Valid() || !ParentComment.Valid() {
		t.Error("post and comment parent types should be valid")
	}

	for _, p := range []ParentType{"", "Post", "video"} {
		if p.Valid() {
			t.Errorf("parent type %q should be invalid", p)
		}
	}
}
