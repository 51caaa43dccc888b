package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/anonto42/lms/backend/pkg/razorpay"
	"github.com/anonto42/lms/backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newContext(method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.ContextUID, uid)
	}
	return c, rec
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	if err != nil {
		return http.StatusInternalServerError
	}
	return 0
}

type loggedAction struct {
	userID  string
	topicID *primitive.ObjectID
	action  models.ActionType
}

type stubActivity struct {
	mu      sync.Mutex
	logged  []loggedAction
	days    []models.HeatmapDay
	streaks models.Streaks
	err     error
	window  services.Window
}

func (s *stubActivity) LogActivity(_ context.Context, userID string, topicID *primitive.ObjectID, action models.ActionType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logged = append(s.logged, loggedAction{userID, topicID, action})
}

func (s *stubActivity) DefaultWindow() services.Window { return s.window }

func (s *stubActivity) ComputeHeatmap(context.Context, string, services.Window) ([]models.HeatmapDay, error) {
	return s.days, s.err
}

func (s *stubActivity) ComputeStreaks(context.Context, string, services.Window) (models.Streaks, error) {
	return s.streaks, s.err
}

type stubPostRepo struct {
	posts   map[string]*models.Post
	created []*models.Post
	err     error
}

func (s *stubPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if s.err != nil {
		return s.err
	}
	post.ID = primitive.NewObjectID()
	s.created = append(s.created, post)
	return nil
}

func (s *stubPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if p, ok := s.posts[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubPostRepo) GetAllPosts(context.Context, int64, int64) ([]models.Post, error) {
	return []models.Post{}, s.err
}

func (s *stubPostRepo) GetTrendingPosts(_ context.Context, limit int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		if int64(len(out)) == limit {
			break
		}
		out = append(out, *p)
	}
	return out, s.err
}

type stubVoteCaster struct {
	result *services.VoteResult
	err    error
	got    models.VoteType
}

func (s *stubVoteCaster) CastVote(_ context.Context, _, _ string, voteType models.VoteType) (*services.VoteResult, error) {
	s.got = voteType
	return s.result, s.err
}

type stubCourseRepo struct {
	courses map[string]*models.Course
}

func (s *stubCourseRepo) CreateCourse(_ context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	s.courses[course.ID.Hex()] = course
	return nil
}

func (s *stubCourseRepo) GetCourseByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubCourseRepo) GetAllCourses(context.Context) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range s.courses {
		out = append(out, *c)
	}
	return out, nil
}

type stubPlaylists struct {
	videos []models.Video
	err    error
}

func (s stubPlaylists) PlaylistVideos(context.Context, string) ([]models.Video, error) {
	return s.videos, s.err
}

type stubDonationRepo struct {
	donations map[string]*models.Donation
	completed []string
	totals    models.DonationTotals
}

func (s *stubDonationRepo) CreateDonation(_ context.Context, d *models.Donation) error {
	s.donations[d.RazorpayOrderID] = d
	return nil
}

func (s *stubDonationRepo) GetByOrderID(_ context.Context, orderID string) (*models.Donation, error) {
	if d, ok := s.donations[orderID]; ok {
		return d, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubDonationRepo) MarkCompleted(_ context.Context, orderID, _ string) error {
	s.completed = append(s.completed, orderID)
	return nil
}

func (s *stubDonationRepo) CompletedTotals(context.Context) (*models.DonationTotals, error) {
	return &s.totals, nil
}

type stubGateway struct {
	secret string
	amount int64
	err    error
}

func (s *stubGateway) KeyID() string { return "rzp_test" }

func (s *stubGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*razorpay.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.amount = amount
	return &razorpay.Order{ID: "order_1", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (s *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return stubSignature(s.secret, orderID, paymentID) == signature
}

func stubSignature(secret, orderID, paymentID string) string {
	return secret + ":" + orderID + "|" + paymentID
}

type stubActivityRepo struct {
	from time.Time
	dau  []models.DailyActiveUsers
}

func (s *stubActivityRepo) CreateActivity(context.Context, *models.ActivityEvent) error { return nil }

func (s *stubActivityRepo) ListActivityTimestamps(context.Context, string, time.Time, time.Time) ([]time.Time, error) {
	return nil, nil
}

func (s *stubActivityRepo) DailyActiveUsers(_ context.Context, from time.Time) ([]models.DailyActiveUsers, error) {
	s.from = from
	return s.dau, nil
}

func (s *stubActivityRepo) TopTopics(context.Context, int64) ([]models.TopicStat, error) {
	return []models.TopicStat{}, nil
}

type stubNotificationRepo struct {
	rows []models.Notification
}

func (s *stubNotificationRepo) CreateNotifications(_ context.Context, rows []models.Notification) error {
	s.rows = append(s.rows, rows...)
	return nil
}

func (s *stubNotificationRepo) GetByRecipient(_ context.Context, uid string, _, _ int) ([]models.Notification, int64, error) {
	out := []models.Notification{}
	for _, n := range s.rows {
		if n.RecipientUID == uid {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubNotificationRepo) GetUnreadCount(_ context.Context, uid string) (int64, error) {
	var n int64
	for _, row := range s.rows {
		if row.RecipientUID == uid && !row.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *stubNotificationRepo) MarkAsRead(_ context.Context, uid string, id uint) error {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].RecipientUID == uid {
			s.rows[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *stubNotificationRepo) MarkAllAsRead(_ context.Context, uid string) error {
	for i := range s.rows {
		if s.rows[i].RecipientUID == uid {
			s.rows[i].IsRead = true
		}
	}
	return nil
}

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) UpsertByFirebaseUID(_ context.Context, user *models.User) error {
	if existing, ok := s.users[user.FirebaseUID]; ok {
		existing.Email, existing.Name = user.Email, user.Name
		*user = *existing
		return nil
	}
	user.Role = models.RoleUser
	s.users[user.FirebaseUID] = user
	return nil
}

func (s *stubUserRepo) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	if u, ok := s.users[uid]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubUserRepo) UpdateFCMToken(_ context.Context, uid, token string) error {
	u, ok := s.users[uid]
	if !ok {
		return repositories.ErrNotFound
	}
	u.FCMToken = &token
	return nil
}

func (s *stubUserRepo) GetAdmins(context.Context) ([]models.User, error) {
	return nil, nil
}
