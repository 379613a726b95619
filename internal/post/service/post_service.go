package service

import (
	"context"
	"errors"

	commoncrypto "github.com/avolkov/scribe/internal/common/crypto"
	"github.com/avolkov/scribe/internal/common/dto"
	commonerrors "github.com/avolkov/scribe/internal/common/errors"
	"github.com/avolkov/scribe/internal/common/logger"
	"github.com/avolkov/scribe/internal/common/mapper"
	"github.com/avolkov/scribe/internal/common/validation"
	"github.com/avolkov/scribe/internal/observability/metrics"
	postdomain "github.com/avolkov/scribe/internal/post/domain"
	postrepo "github.com/avolkov/scribe/internal/post/repository"
	userdomain "github.com/avolkov/scribe/internal/user/domain"
)

// FeedPublisher receives every freshly created post; the live feed hub
// implements it.
type FeedPublisher interface {
	PublishPost(post dto.Post)
}

type PostService struct {
	repo        postrepo.Repository
	idGenerator commoncrypto.IDGenerator
	feed        FeedPublisher
	log         *logger.Logger
}

func NewPostService(
	repo postrepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	feed FeedPublisher,
	log *logger.Logger,
) *PostService {
	return &PostService{
		repo:        repo,
		idGenerator: idGenerator,
		feed:        feed,
		log:         log,
	}
}

type CreateInput struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required,max=20000"`
}

type UpdateInput struct {
	Title   *string `validate:"omitempty,min=1,max=200"`
	Content *string `validate:"omitempty,min=1,max=20000"`
}

func (s *PostService) Create(ctx context.Context, input CreateInput, authorID string) (dto.Post, error) {
	if err := validation.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": authorID,
			"action":    "post_create_validation_failed",
		}).Warnf("post create validation failed: %v", err)
		return dto.Post{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": authorID,
			"action":    "post_create_id_generation_failed",
		}).Errorf("post create failed: id generation error: %v", err)
		return dto.Post{}, err
	}

	post := postdomain.Post{
		ID:       postdomain.ID(id),
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: userdomain.ID(authorID),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": authorID,
			"action":    "post_create_failed",
		}).Errorf("post create failed: %v", err)
		return dto.Post{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	// re-fetch for store-assigned timestamps and the author projection
	created, err := s.fetch(ctx, post.ID)
	if err != nil {
		return dto.Post{}, err
	}

	result := mapper.PostToDTO(created)
	if s.feed != nil {
		s.feed.PublishPost(result)
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id":   id,
		"author_id": authorID,
		"action":    "post_created",
	}).Info("post created")

	return result, nil
}

func (s *PostService) FindAll(ctx context.Context) ([]dto.Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "post_list_failed",
		}).Errorf("post list failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return mapper.PostsToDTO(posts), nil
}

func (s *PostService) FindByAuthor(ctx context.Context, authorID string) ([]dto.Post, error) {
	posts, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": authorID,
			"action":    "post_list_by_author_failed",
		}).Errorf("post list by author failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return mapper.PostsToDTO(posts), nil
}

func (s *PostService) FindOne(ctx context.Context, id string) (dto.Post, error) {
	post, err := s.fetch(ctx, postdomain.ID(id))
	if err != nil {
		return dto.Post{}, err
	}
	return mapper.PostToDTO(post), nil
}

func (s *PostService) Update(ctx context.Context, id string, input UpdateInput, callerID string) (dto.Post, error) {
	if err := validation.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"post_id": id,
			"action":  "post_update_validation_failed",
		}).Warnf("post update validation failed: %v", err)
		return dto.Post{}, err
	}

	// not-found is reported before the ownership check is ever evaluated
	post, err := s.fetch(ctx, postdomain.ID(id))
	if err != nil {
		return dto.Post{}, err
	}

	if err := s.requireAuthor(ctx, post, callerID, "update"); err != nil {
		return dto.Post{}, err
	}

	patch := postdomain.Patch{
		Title:   input.Title,
		Content: input.Content,
	}

	if err := s.repo.Update(ctx, post.ID, patch); err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return dto.Post{}, ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": id,
			"action":  "post_update_failed",
		}).Errorf("post update failed: %v", err)
		return dto.Post{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	updated, err := s.fetch(ctx, post.ID)
	if err != nil {
		return dto.Post{}, err
	}

	metrics.PostsUpdatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id":   id,
		"caller_id": callerID,
		"action":    "post_updated",
	}).Info("post updated")

	return mapper.PostToDTO(updated), nil
}

func (s *PostService) Remove(ctx context.Context, id string, callerID string) error {
	post, err := s.fetch(ctx, postdomain.ID(id))
	if err != nil {
		return err
	}

	if err := s.requireAuthor(ctx, post, callerID, "remove"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": id,
			"action":  "post_delete_failed",
		}).Errorf("post delete failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.PostsDeletedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id":   id,
		"caller_id": callerID,
		"action":    "post_deleted",
	}).Info("post deleted")

	return nil
}

func (s *PostService) fetch(ctx context.Context, id postdomain.ID) (postdomain.WithAuthor, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return postdomain.WithAuthor{}, ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_fetch_failed",
		}).Errorf("post fetch failed: %v", err)
		return postdomain.WithAuthor{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return post, nil
}

func (s *PostService) requireAuthor(ctx context.Context, post postdomain.WithAuthor, callerID, operation string) error {
	if string(post.AuthorID) != callerID {
		metrics.OwnershipDeniedTotal.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"post_id":   string(post.ID),
			"author_id": string(post.AuthorID),
			"caller_id": callerID,
			"action":    "post_" + operation + "_forbidden",
		}).Warn("post mutation forbidden: caller is not the author")
		return ErrNotPostAuthor
	}
	return nil
}
