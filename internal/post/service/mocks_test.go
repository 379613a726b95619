package service_test

import (
	"context"

	"github.com/avolkov/scribe/internal/common/dto"
	postdomain "github.com/avolkov/scribe/internal/post/domain"
	postrepo "github.com/avolkov/scribe/internal/post/repository"
)

type mockPostRepo struct {
	createFunc       func(ctx context.Context, post postdomain.Post) error
	findAllFunc      func(ctx context.Context) ([]postdomain.WithAuthor, error)
	findByAuthorFunc func(ctx context.Context, authorID string) ([]postdomain.WithAuthor, error)
	findByIDFunc     func(ctx context.Context, id postdomain.ID) (postdomain.WithAuthor, error)
	updateFunc       func(ctx context.Context, id postdomain.ID, patch postdomain.Patch) error
	deleteFunc       func(ctx context.Context, id postdomain.ID) error
}

func (m *mockPostRepo) Create(ctx context.Context, post postdomain.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) FindAll(ctx context.Context) ([]postdomain.WithAuthor, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) FindByAuthor(ctx context.Context, authorID string) ([]postdomain.WithAuthor, error) {
	if m.findByAuthorFunc != nil {
		return m.findByAuthorFunc(ctx, authorID)
	}
	return nil, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id postdomain.ID) (postdomain.WithAuthor, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return postdomain.WithAuthor{}, postrepo.ErrPostNotFound
}

func (m *mockPostRepo) Update(ctx context.Context, id postdomain.ID, patch postdomain.Patch) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id postdomain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "test-post-id", nil
}

type mockFeed struct {
	published []dto.Post
}

func (m *mockFeed) PublishPost(post dto.Post) {
	m.published = append(m.published, post)
}
