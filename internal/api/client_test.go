package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anonto42/threads-go-client/internal/models"
)

// staticToken is a fixed TokenSource for tests
type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, e *echo.Echo, token string) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(e)
	client := NewClient(srv.URL, 5*time.Second, staticToken(token), zap.NewNop())
	return client, srv.Close
}

func TestListSendsBearerWhenPresent(t *testing.T) {
	var gotAuth string
	e := echo.New()
	e.GET("/posts/", func(c echo.Context) error {
		gotAuth = c.Request().Header.Get("Authorization")
		return c.JSON(http.StatusOK, []models.Post{
			{ID: 1, Text: "hello", Owner: models.User{ID: 10, Username: "ann"}, LikesCount: 3},
		})
	})
	client, done := newTestClient(t, e, "tok123")
	defer done()

	posts, err := NewHTTPPostAPI(client).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Text)
	assert.Equal(t, 3, posts[0].LikesCount)
}

func TestListOmitsBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	var gotRequestID string
	e := echo.New()
	e.GET("/posts/", func(c echo.Context) error {
		gotAuth = c.Request().Header.Get("Authorization")
		gotRequestID = c.Request().Header.Get("X-Request-ID")
		return c.JSON(http.StatusOK, []models.Post{})
	})
	client, done := newTestClient(t, e, "")
	defer done()

	_, err := NewHTTPPostAPI(client).List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestCreateSendsMultipartForm(t *testing.T) {
	var gotText, gotFilename, gotImage string
	e := echo.New()
	e.POST("/posts/", func(c echo.Context) error {
		gotText = c.FormValue("text")
		if file, err := c.FormFile("image"); err == nil {
			gotFilename = file.Filename
			f, _ := file.Open()
			defer f.Close()
			buf := make([]byte, file.Size)
			f.Read(buf)
			gotImage = string(buf)
		}
		return c.JSON(http.StatusCreated, models.Post{ID: 42, Text: c.FormValue("text")})
	})
	client, done := newTestClient(t, e, "tok")
	defer done()

	post, err := NewHTTPPostAPI(client).Create(context.Background(), "with image", &Upload{
		Filename: "pic.png",
		Reader:   strings.NewReader("png-bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.Equal(t, "with image", gotText)
	assert.Equal(t, "pic.png", gotFilename)
	assert.Equal(t, "png-bytes", gotImage)
}

func TestUpdateEscapesNewText(t *testing.T) {
	var gotNewText string
	e := echo.New()
	e.PUT("/posts/:id", func(c echo.Context) error {
		gotNewText = c.QueryParam("new_text")
		return c.JSON(http.StatusOK, models.Post{ID: 1, Text: gotNewText})
	})
	client, done := newTestClient(t, e, "tok")
	defer done()

	post, err := NewHTTPPostAPI(client).Update(context.Background(), 1, "spaces & symbols?")

	require.NoError(t, err)
	assert.Equal(t, "spaces & symbols?", gotNewText)
	assert.Equal(t, "spaces & symbols?", post.Text)
}

func TestDeleteAccepts204(t *testing.T) {
	e := echo.New()
	e.DELETE("/posts/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	client, done := newTestClient(t, e, "tok")
	defer done()

	assert.NoError(t, NewHTTPPostAPI(client).Delete(context.Background(), 7))
}

func TestToggleLikeDecodesResult(t *testing.T) {
	e := echo.New()
	e.POST("/posts/:id/like", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.LikeResult{IsLikedByUser: true, LikesCount: 5})
	})
	client, done := newTestClient(t, e, "tok")
	defer done()

	result, err := NewHTTPPostAPI(client).ToggleLike(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, result.IsLikedByUser)
	assert.Equal(t, 5, result.LikesCount)
}

func TestStringDetailErrorDecoding(t *testing.T) {
	e := echo.New()
	e.POST("/posts/:id/like", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	})
	client, done := newTestClient(t, e, "")
	defer done()

	_, err := NewHTTPPostAPI(client).ToggleLike(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not authenticated", apiErr.Error())
}

func TestValidationDetailErrorDecoding(t *testing.T) {
	e := echo.New()
	e.POST("/posts/", func(c echo.Context) error {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": []map[string]interface{}{
				{"loc": []interface{}{"body", "text"}, "msg": "field required", "type": "value_error.missing"},
				{"loc": []interface{}{"body", "image"}, "msg": "invalid image", "type": "value_error"},
			},
		})
	})
	client, done := newTestClient(t, e, "tok")
	defer done()

	_, err := NewHTTPPostAPI(client).Create(context.Background(), "", nil)

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "field required, invalid image", apiErr.Error())
}

func TestNotFoundHelper(t *testing.T) {
	e := echo.New()
	e.GET("/users/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "User not found"})
	})
	client, done := newTestClient(t, e, "")
	defer done()

	_, err := NewHTTPUserAPI(client).GetProfile(context.Background(), 999)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestLoginAndCurrentUserFlow(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		var req models.LoginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
		if req.Email != "ann@example.com" || req.Password != "password123" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
		}
		return c.JSON(http.StatusOK, models.Token{AccessToken: "fresh-token", TokenType: "bearer"})
	})
	client, done := newTestClient(t, e, "")
	defer done()
	authAPI := NewHTTPAuthAPI(client)

	token, err := authAPI.Login(context.Background(), "ann@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token.AccessToken)

	_, err = authAPI.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestUploadAvatarSendsFilePart(t *testing.T) {
	var gotFilename string
	e := echo.New()
	e.POST("/users/me/avatar", func(c echo.Context) error {
		file, err := c.FormFile("file")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "missing file")
		}
		gotFilename = file.Filename
		url := "/static/avatars/10.png"
		return c.JSON(http.StatusOK, models.User{ID: 10, Username: "ann", AvatarURL: &url})
	})
	client, done := newTestClient(t, e, "tok")
	defer done()

	user, err := NewHTTPUserAPI(client).UploadAvatar(context.Background(), Upload{
		Filename: "me.png",
		Reader:   strings.NewReader("avatar-bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "me.png", gotFilename)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "/static/avatars/10.png", *user.AvatarURL)
}
