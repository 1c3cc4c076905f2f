package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/service"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/stretchr/testify/require"
)

// ---- Mocks ----

type mockAuthService struct {
	registerFn    func(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error)
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.Session, error)
	googleLoginFn func(ctx context.Context, req models.GoogleLoginRequest) (models.Session, error)
	refreshFn     func(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error)
	parseFn       func(ctx context.Context, tokenString string) (models.Identity, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) GoogleLogin(ctx context.Context, req models.GoogleLoginRequest) (models.Session, error) {
	return m.googleLoginFn(ctx, req)
}

func (m *mockAuthService) Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error) {
	return m.refreshFn(ctx, req)
}

func (m *mockAuthService) ParseAccessToken(ctx context.Context, tokenString string) (models.Identity, error) {
	if m.parseFn == nil {
		return models.Identity{}, service.ErrTokenIsExpiredOrInvalid
	}
	return m.parseFn(ctx, tokenString)
}

// mockProfileService panics on methods a test did not stub.
type mockProfileService struct {
	service.ProfileService
	summaryFn func(ctx context.Context, userID int64) (models.ProfileSummary, error)
	detailFn  func(ctx context.Context, userID int64) (models.ProfileDetail, error)
	publicFn  func(ctx context.Context, username string) (models.PublicProfile, error)
	setupFn   func(ctx context.Context, userID int64, input models.ProfileInput, picture *models.UploadedFile) (models.Profile, error)
	pictureFn func(ctx context.Context, userID int64, picture *models.UploadedFile) (models.Profile, error)
}

func (m *mockProfileService) GetProfileSummary(ctx context.Context, userID int64) (models.ProfileSummary, error) {
	return m.summaryFn(ctx, userID)
}

func (m *mockProfileService) GetProfileDetail(ctx context.Context, userID int64) (models.ProfileDetail, error) {
	return m.detailFn(ctx, userID)
}

func (m *mockProfileService) GetPublicProfile(ctx context.Context, username string) (models.PublicProfile, error) {
	return m.publicFn(ctx, username)
}

func (m *mockProfileService) SetupProfile(ctx context.Context, userID int64, input models.ProfileInput, picture *models.UploadedFile) (models.Profile, error) {
	return m.setupFn(ctx, userID, input, picture)
}

func (m *mockProfileService) UpdateProfilePicture(ctx context.Context, userID int64, picture *models.UploadedFile) (models.Profile, error) {
	return m.pictureFn(ctx, userID, picture)
}

// mockContentService panics on methods a test did not stub.
type mockContentService struct {
	service.ContentService
	listFn            func(ctx context.Context, userID int64) ([]models.ChapterOverview, error)
	listPagedFn       func(ctx context.Context, userID int64, page models.PageRequest) (models.ChapterPage, error)
	listTopicsFn      func(ctx context.Context, userID, chapterID int64, page models.PageRequest) (models.TopicPage, error)
	createChapterFn   func(ctx context.Context, userID int64, input models.CreateChapterInput) (models.Chapter, error)
	createTopicFn     func(ctx context.Context, userID int64, input models.CreateTopicInput) (models.Topic, error)
	createQuestionFn  func(ctx context.Context, userID int64, input models.CreateQuestionInput, image *models.UploadedFile) (models.Question, error)
	chapterProgressFn func(ctx context.Context, userID, chapterID int64, completed bool) error
	topicProgressFn   func(ctx context.Context, userID, topicID int64, completed bool) error
}

func (m *mockContentService) ListChapters(ctx context.Context, userID int64) ([]models.ChapterOverview, error) {
	return m.listFn(ctx, userID)
}

func (m *mockContentService) ListChaptersPaged(ctx context.Context, userID int64, page models.PageRequest) (models.ChapterPage, error) {
	return m.listPagedFn(ctx, userID, page)
}

func (m *mockContentService) ListTopicsByChapter(ctx context.Context, userID, chapterID int64, page models.PageRequest) (models.TopicPage, error) {
	return m.listTopicsFn(ctx, userID, chapterID, page)
}

func (m *mockContentService) CreateChapter(ctx context.Context, userID int64, input models.CreateChapterInput) (models.Chapter, error) {
	return m.createChapterFn(ctx, userID, input)
}

func (m *mockContentService) CreateTopic(ctx context.Context, userID int64, input models.CreateTopicInput) (models.Topic, error) {
	return m.createTopicFn(ctx, userID, input)
}

func (m *mockContentService) CreateQuestion(ctx context.Context, userID int64, input models.CreateQuestionInput, image *models.UploadedFile) (models.Question, error) {
	return m.createQuestionFn(ctx, userID, input, image)
}

func (m *mockContentService) SetChapterProgress(ctx context.Context, userID, chapterID int64, completed bool) error {
	return m.chapterProgressFn(ctx, userID, chapterID, completed)
}

func (m *mockContentService) SetTopicProgress(ctx context.Context, userID, topicID int64, completed bool) error {
	return m.topicProgressFn(ctx, userID, topicID, completed)
}

type mockSearchService struct {
	searchFn func(ctx context.Context, target models.SearchTarget, title string, page models.PageRequest) (models.SearchPage, error)
}

func (m *mockSearchService) Search(ctx context.Context, target models.SearchTarget, title string, page models.PageRequest) (models.SearchPage, error) {
	return m.searchFn(ctx, target, title, page)
}

type mockErrorLogService struct {
	entries []models.ErrorLog
	err     error
}

func (m *mockErrorLogService) Record(_ context.Context, entry models.ErrorLog) error {
	m.entries = append(m.entries, entry)
	return m.err
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ---- Helpers ----

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services: services,
		logger:   logger.Nop(),
	}
}

func newTestHandlerWithConfig(services *service.Services, cfg config.StructuredConfig) *Handler {
	return NewHandler(services, cfg, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// withCaller attaches an authenticated identity to r, as the auth
// middleware would.
func withCaller(r *http.Request, userID int64) *http.Request {
	ctx := utils.WithIdentity(r.Context(), models.Identity{UserID: userID, Username: "bob"})
	return injectNopLogger(r.WithContext(ctx))
}

// decodeEnvelope decodes rec's body, leaving data as raw JSON.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (models.Envelope, json.RawMessage) {
	t.Helper()

	var raw struct {
		Error   bool            `json:"error"`
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &raw), string(body))

	return models.Envelope{Error: raw.Error, Code: raw.Code, Message: raw.Message}, raw.Data
}
