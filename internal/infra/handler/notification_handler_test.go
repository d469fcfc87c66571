package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mindermate/notification-scheduler/internal/app"
	"github.com/mindermate/notification-scheduler/internal/domain"
	"github.com/mindermate/notification-scheduler/internal/infra/handler"
	"github.com/mindermate/notification-scheduler/internal/infra/push"
)

type notificationFixture struct {
	tasks  *domain.MockTaskRepository
	users  *domain.MockUserRepository
	sender *push.MockSender
	userID domain.UserID
	router *gin.Engine
}

func setupNotificationRouter(t *testing.T) *notificationFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)

	userID, err := domain.UserIDFromString(uuid.Must(uuid.NewV7()).String())
	require.NoError(t, err)

	f := &notificationFixture{
		tasks:  domain.NewMockTaskRepository(ctrl),
		users:  domain.NewMockUserRepository(ctrl),
		sender: push.NewMockSender(ctrl),
		userID: userID,
	}

	useCase := app.NewNotificationUseCase(f.tasks, f.users, f.sender, time.Second)
	h := handler.NewNotificationHandler(useCase)

	f.router = gin.New()
	api := f.router.Group("/api/v1")
	api.Use(handler.JWTAuthMiddleware(jwtSecret))
	h.RegisterRoutes(api)

	return f
}

func (f *notificationFixture) doJSON(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization",
		"Bearer "+signToken(t, jwtSecret, f.userID.String(), time.Hour))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestRegisterTokenHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupNotificationRouter(t)

		f.users.EXPECT().FindByID(gomock.Any(), f.userID).
			Return(nil, domain.ErrUserNotFound)
		f.users.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		rec := f.doJSON(t, http.MethodPost, "/api/v1/notifications/register-token",
			map[string]any{"fcm_token": "device-token"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token field", func(t *testing.T) {
		f := setupNotificationRouter(t)

		rec := f.doJSON(t, http.MethodPost, "/api/v1/notifications/register-token",
			map[string]any{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnregisterTokenHandler(t *testing.T) {
	f := setupNotificationRouter(t)

	f.users.EXPECT().RemoveTokens(gomock.Any(), f.userID, []string{"device-token"}).
		Return(nil)

	rec := f.doJSON(t, http.MethodPost, "/api/v1/notifications/unregister-token",
		map[string]any{"fcm_token": "device-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSendTestNotificationHandler(t *testing.T) {
	f := setupNotificationRouter(t)

	user := domain.ReconstituteUser(f.userID, []string{"token-a"}, time.Now(), time.Now())

	f.users.EXPECT().FindByID(gomock.Any(), f.userID).Return(user, nil)
	f.sender.EXPECT().SendMulticast(gomock.Any(), []string{"token-a"}, gomock.Any()).
		Return(push.MulticastResult{
			SuccessCount: 1,
			Results:      []push.TokenResult{{Token: "token-a"}},
		}, nil)

	rec := f.doJSON(t, http.MethodPost, "/api/v1/notifications/test", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.DispatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.SuccessCount)
}

func TestSendTaskReminderHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupNotificationRouter(t)

		user := domain.ReconstituteUser(f.userID, []string{"token-a"}, time.Now(), time.Now())
		task := domain.ReconstituteTask(
			domain.NewTaskID(), f.userID, domain.TypeSimple,
			"manual", "body", "2024-03-15", "", "09:30",
			false, time.Now(), time.Now(),
		)

		f.tasks.EXPECT().FindByID(gomock.Any(), task.ID()).Return(task, nil)
		f.users.EXPECT().FindByID(gomock.Any(), f.userID).Return(user, nil)
		f.sender.EXPECT().SendMulticast(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(push.MulticastResult{
				SuccessCount: 1,
				Results:      []push.TokenResult{{Token: "token-a"}},
			}, nil)

		rec := f.doJSON(t, http.MethodPost,
			"/api/v1/notifications/schedule/"+task.ID().String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp handler.DispatchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("completed task rejected", func(t *testing.T) {
		f := setupNotificationRouter(t)

		task := domain.ReconstituteTask(
			domain.NewTaskID(), f.userID, domain.TypeSimple,
			"done", "body", "2024-03-15", "", "09:30",
			true, time.Now(), time.Now(),
		)

		f.tasks.EXPECT().FindByID(gomock.Any(), task.ID()).Return(task, nil)

		rec := f.doJSON(t, http.MethodPost,
			"/api/v1/notifications/schedule/"+task.ID().String(), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
