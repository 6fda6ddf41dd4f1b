package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"Chirp/internal/core/media"
	"Chirp/internal/core/notifications"
	"Chirp/internal/core/users"
)

// maxPostTextLen caps post and comment text length in bytes
const maxPostTextLen = 10000

type postService struct {
	postRepo   Repository
	userRepo   users.Repository
	mediaStore media.Store
	notifier   notifications.Service
	logger     *slog.Logger
}

// NewService creates a new post interaction service
func NewService(
	postRepo Repository,
	userRepo users.Repository,
	mediaStore media.Store,
	notifier notifications.Service,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		mediaStore: mediaStore,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreatePost validates content, uploads the image when present and persists
// the post.
// Flow: verify user exists -> validate text/image -> upload image -> insert.
// An upload failure is fatal: no post is created without its requested image.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && req.ImageData == "" {
		return nil, NewValidationError("text", "post must have text or image")
	}
	if len(text) > maxPostTextLen {
		return nil, NewValidationError("text", fmt.Sprintf("text exceeds %d characters", maxPostTextLen))
	}

	post := &Post{
		ID:     uuid.NewString(),
		UserID: req.UserID,
	}
	if text != "" {
		post.Text = &text
	}

	if req.ImageData != "" {
		data, err := media.DecodePayload(req.ImageData)
		if err != nil {
			return nil, NewValidationError("img", err.Error())
		}

		asset, err := s.mediaStore.Upload(ctx, data)
		if err != nil {
			s.logger.Error("image upload failed",
				"error", err,
				"user", req.UserID)
			return nil, err
		}
		post.ImageURL = &asset.URL
		post.ImageID = &asset.ID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "post", post.ID, "user", req.UserID)
	return post, nil
}

// DeletePost removes a post owned by requesterID.
// The media-store delete is best-effort: a failure is logged and the post
// row is removed regardless.
func (s *postService) DeletePost(ctx context.Context, requesterID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		return ErrNotPostOwner
	}

	if post.ImageURL != nil {
		assetID := ""
		if post.ImageID != nil {
			assetID = *post.ImageID
		}
		if assetID == "" {
			// Rows that predate the image_id column fall back to deriving
			// the id from the URL
			assetID = media.DeriveAssetID(*post.ImageURL)
		}
		if err := s.mediaStore.Delete(ctx, assetID); err != nil {
			s.logger.Warn("failed to delete post image from media store",
				"error", err,
				"post", postID,
				"asset", assetID)
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post", postID, "user", requesterID)
	return nil
}

// CommentOnPost appends a comment and returns the post view with commenter
// identities resolved. Any authenticated user may comment; there is no
// ownership check.
func (s *postService) CommentOnPost(ctx context.Context, req CommentRequest) (*PostView, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, NewValidationError("text", "comment cannot be empty")
	}
	if len(text) > maxPostTextLen {
		return nil, NewValidationError("text", fmt.Sprintf("text exceeds %d characters", maxPostTextLen))
	}

	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:     uuid.NewString(),
		PostID: req.PostID,
		UserID: req.UserID,
		Text:   text,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Info("comment added", "post", req.PostID, "user", req.UserID)

	view, err := s.postRepo.GetView(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post view: %w", err)
	}
	return view, nil
}

// ToggleLike likes or unlikes the post for the user.
// Toggle behavior keyed on current membership in the post's like set:
// - Not liked → like; notify the post owner unless the liker is the owner
// - Already liked → unlike; never notifies
// The like set is a join table guarded by its primary key, so the post and
// user sides of the relation cannot diverge.
func (s *postService) ToggleLike(ctx context.Context, userID, postID string) ([]string, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.HasLike(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like state: %w", err)
	}

	if liked {
		if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
			return nil, fmt.Errorf("failed to unlike post: %w", err)
		}
		s.logger.Info("post unliked", "post", postID, "user", userID)
	} else {
		if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
			return nil, fmt.Errorf("failed to like post: %w", err)
		}

		if userID != post.UserID {
			if err := s.notifier.Notify(ctx, notifications.TypeLike, userID, post.UserID); err != nil {
				// The like is already recorded; losing the notification
				// is not worth failing the request over
				s.logger.Error("failed to create like notification",
					"error", err,
					"post", postID,
					"liker", userID)
			}
		}
		s.logger.Info("post liked", "post", postID, "user", userID)
	}

	likers, err := s.postRepo.ListLikerIDs(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}
	return likers, nil
}

// GetAllPosts returns every post newest-first. An empty feed is not an error.
func (s *postService) GetAllPosts(ctx context.Context) ([]*PostView, error) {
	views, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return views, nil
}

// GetLikedPosts returns posts liked by the user
func (s *postService) GetLikedPosts(ctx context.Context, userID string) ([]*PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	views, err := s.postRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}
	return views, nil
}

// GetFollowingPosts returns posts authored by users the requester follows,
// newest-first
func (s *postService) GetFollowingPosts(ctx context.Context, requesterID string) ([]*PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	following, err := s.userRepo.GetFollowingIDs(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	if len(following) == 0 {
		return []*PostView{}, nil
	}

	views, err := s.postRepo.ListByAuthors(ctx, following)
	if err != nil {
		return nil, fmt.Errorf("failed to list following posts: %w", err)
	}
	return views, nil
}

// GetUserPosts returns posts authored by the named user, newest-first
func (s *postService) GetUserPosts(ctx context.Context, username string) ([]*PostView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	views, err := s.postRepo.ListByAuthors(ctx, []string{user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	return views, nil
}
