package store

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/models"
)

// MockPostAPI is a mock implementation of the api.PostAPI interface
type MockPostAPI struct {
	mock.Mock
}

func (m *MockPostAPI) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostAPI) Create(ctx context.Context, text string, image *api.Upload) (*models.Post, error) {
	args := m.Called(ctx, text, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostAPI) Update(ctx context.Context, id uint, newText string) (*models.Post, error) {
	args := m.Called(ctx, id, newText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostAPI) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostAPI) ToggleLike(ctx context.Context, id uint) (*models.LikeResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LikeResult), args.Error(1)
}

func (m *MockPostAPI) CreateReply(ctx context.Context, postID uint, text string, image *api.Upload) (*models.Reply, error) {
	args := m.Called(ctx, postID, text, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

// MockUserAPI is a mock implementation of the api.UserAPI interface
type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserAPI) UpdateMe(ctx context.Context, req models.UpdateUserRequest) (*models.UserUpdateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserUpdateResponse), args.Error(1)
}

func (m *MockUserAPI) UploadAvatar(ctx context.Context, file api.Upload) (*models.User, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAPI) DeleteAvatar(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// apiErrorWithDetail builds the decoded form of a {"detail": "..."} response
func apiErrorWithDetail(detail string) *api.APIError {
	return &api.APIError{Status: "400 Bad Request", Code: 400, Detail: detail}
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	infos     []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// samplePosts builds the feed fixture used across the store tests: two posts,
// the first with two replies, one of them already liked by the viewer.
func samplePosts() []models.Post {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Post{
		{
			ID:            1,
			Text:          "first post",
			Timestamp:     ts,
			Owner:         models.User{ID: 10, Username: "ann", Email: "ann@example.com"},
			LikesCount:    3,
			IsLikedByUser: false,
			Replies: []models.Reply{
				{
					ID:            5,
					Text:          "nice one",
					Timestamp:     ts.Add(time.Minute),
					Owner:         models.User{ID: 11, Username: "ben", Email: "ben@example.com"},
					LikesCount:    1,
					IsLikedByUser: true,
				},
				{
					ID:            6,
					Text:          "agreed",
					Timestamp:     ts.Add(2 * time.Minute),
					Owner:         models.User{ID: 12, Username: "cam", Email: "cam@example.com"},
					LikesCount:    0,
					IsLikedByUser: false,
				},
			},
		},
		{
			ID:            2,
			Text:          "second post",
			Timestamp:     ts.Add(time.Hour),
			Owner:         models.User{ID: 11, Username: "ben", Email: "ben@example.com"},
			LikesCount:    7,
			IsLikedByUser: true,
			Replies:       []models.Reply{},
		},
	}
}
