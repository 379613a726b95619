package mapper

import (
	"github.com/avolkov/scribe/internal/common/dto"
	postdomain "github.com/avolkov/scribe/internal/post/domain"
)

func PostToDTO(post postdomain.WithAuthor) dto.Post {
	author := UserToDTO(post.Author)
	return dto.Post{
		ID:        string(post.ID),
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  string(post.AuthorID),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Author:    &author,
	}
}

func PostsToDTO(posts []postdomain.WithAuthor) []dto.Post {
	result := make([]dto.Post, len(posts))
	for i, p := range posts {
		result[i] = PostToDTO(p)
	}
	return result
}
