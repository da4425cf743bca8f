package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/model"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type harness struct {
	srv  *Server
	ts   *httptest.Server
	logs *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	srv, err := New(Config{
		Secret: "test-secret",
		Logger: zap.New(core),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	srv.Seed()

	_, err = srv.AddUser(model.RegisterRequest{Username: "admin", Password: "admin-pass", Email: "admin@example.com"}, model.RoleAdmin)
	require.NoError(t, err)
	_, err = srv.AddUser(model.RegisterRequest{Username: "ivan", Password: "ivan-pass", Email: "ivan@example.com"}, model.RoleUser)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &harness{srv: srv, ts: ts, logs: logs}
}

func (h *harness) baseURL() string { return h.ts.URL + BasePath }

// signIn logs in and returns services that carry the token.
func (h *harness) signIn(t *testing.T, username, password string) (*api.Services, model.User) {
	t.Helper()
	resp, err := api.NewAuth(api.New(h.baseURL())).Login(context.Background(), model.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	token := resp.Token
	client := api.New(h.baseURL(), api.WithCredentials(api.CredentialFunc(func(context.Context) (string, bool) {
		return token, true
	})))
	return api.NewServices(client), resp.User
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestAuth_LoginIssuesVerifiableToken(t *testing.T) {
	h := newHarness(t)
	auth := api.NewAuth(api.New(h.baseURL()))
	ctx := context.Background()

	resp, err := auth.Login(ctx, model.LoginRequest{Username: "IVAN", Password: "ivan-pass"})
	require.NoError(t, err)
	assert.Equal(t, "ivan", resp.User.Username)
	assert.Equal(t, model.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := h.srv.tokens.verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ivan", claims.Subject)
	assert.True(t, fixedNow.Add(24*time.Hour).Equal(claims.ExpiresAt.Time), "expires at %s", claims.ExpiresAt.Time)

	require.NoError(t, auth.Validate(ctx, resp.Token))
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(auth.Validate(ctx, resp.Token+"x")))

	// refresh rotates the refresh token
	next, err := auth.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, next.RefreshToken)
	_, err = auth.Refresh(ctx, resp.RefreshToken)
	assert.True(t, api.IsUnauthorized(err))
}

func TestAuth_LoginFailures(t *testing.T) {
	h := newHarness(t)
	auth := api.NewAuth(api.New(h.baseURL()))

	_, err := auth.Login(context.Background(), model.LoginRequest{Username: "ivan", Password: "wrong"})
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Невалидно потребителско име или парола", apiErr.Message)

	_, err = auth.Login(context.Background(), model.LoginRequest{Username: "ivan"})
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))
}

func TestAuth_Register(t *testing.T) {
	h := newHarness(t)
	auth := api.NewAuth(api.New(h.baseURL()))
	ctx := context.Background()

	req := model.RegisterRequest{
		Username: "maria", Email: "maria@example.com",
		Password: "maria-pass", ConfirmPassword: "maria-pass",
		Role: model.RoleAdmin,
	}
	require.NoError(t, auth.Register(ctx, req))

	err := auth.Register(ctx, req)
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))

	// registration never grants admin
	resp, err := auth.Login(ctx, model.LoginRequest{Username: "maria", Password: "maria-pass"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, resp.User.Role)
}

func TestAuth_ProfileAndPassword(t *testing.T) {
	h := newHarness(t)
	svc, user := h.signIn(t, "ivan", "ivan-pass")
	ctx := context.Background()

	require.NoError(t, svc.Auth.UpdateProfile(ctx, model.UpdateProfile{FirstName: "Иван", LastName: "Иванов", Email: "new@example.com"}))
	got, err := svc.Auth.User(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Иван", got.FirstName)
	assert.Equal(t, "new@example.com", got.Email)

	err = svc.Auth.ChangePassword(ctx, model.ChangePassword{CurrentPassword: "nope", NewPassword: "a", ConfirmPassword: "a"})
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))
	require.NoError(t, svc.Auth.ChangePassword(ctx, model.ChangePassword{CurrentPassword: "ivan-pass", NewPassword: "fresh-pass", ConfirmPassword: "fresh-pass"}))

	_, err = svc.Auth.Login(ctx, model.LoginRequest{Username: "ivan", Password: "fresh-pass"})
	require.NoError(t, err)

	// another user's record is off limits
	_, err = svc.Auth.User(ctx, 1)
	assert.True(t, api.IsForbidden(err))

	require.NoError(t, svc.Auth.Logout(ctx))
}

func TestAuthenticate_RejectsMissingAndBadTokens(t *testing.T) {
	h := newHarness(t)

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Token abc",
		"invalid":   "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, h.baseURL()+"/exercise", nil)
			require.NoError(t, err)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var body errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "unauthorized", body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	h := newHarness(t)
	old := &issuer{secret: []byte("test-secret"), ttl: time.Minute, now: func() time.Time { return fixedNow.Add(-time.Hour) }}
	token, err := old.issue(model.User{ID: 2, Username: "ivan", Role: model.RoleUser})
	require.NoError(t, err)

	client := api.New(h.baseURL(), api.WithCredentials(api.CredentialFunc(func(context.Context) (string, bool) { return token, true })))
	_, err = api.NewExercises(client).List(context.Background())
	assert.True(t, api.IsUnauthorized(err))
}

func TestCatalog_AdminOnlyMutations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user, _ := h.signIn(t, "ivan", "ivan-pass")
	admin, _ := h.signIn(t, "admin", "admin-pass")

	exercise := model.Exercise{Name: "Мъртва тяга", CategoryID: 3}
	_, err := user.Exercises.Create(ctx, exercise)
	require.Error(t, err)
	assert.True(t, api.IsForbidden(err))
	assert.Equal(t, msgForbidden, err.(*api.Error).Message)

	created, err := admin.Exercises.Create(ctx, exercise)
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	created.Description = "Тяга от пода"
	_, err = user.Exercises.Update(ctx, created.ID, created)
	assert.True(t, api.IsForbidden(err))
	updated, err := admin.Exercises.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Тяга от пода", updated.Description)

	assert.True(t, api.IsForbidden(user.Exercises.Delete(ctx, created.ID)))
	require.NoError(t, admin.Exercises.Delete(ctx, created.ID))
	_, err = user.Exercises.Get(ctx, created.ID)
	assert.True(t, api.IsNotFound(err))

	_, err = user.Foods.Create(ctx, model.Food{Name: "Банан", Kcal: 89})
	assert.True(t, api.IsForbidden(err))
	_, err = user.ExerciseCategories.Create(ctx, model.ExerciseCategory{Name: "Рамене"})
	assert.True(t, api.IsForbidden(err))
}

func TestCatalog_Queries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, _ := h.signIn(t, "ivan", "ivan-pass")

	all, err := svc.Exercises.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := svc.Exercises.Search(ctx, "КЛЕК")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Клек", found[0].Name)

	chest, err := svc.Exercises.ByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, chest, 2)

	fruits, err := svc.Foods.ByCategory(ctx, model.FoodFruits)
	require.NoError(t, err)
	require.Len(t, fruits, 1)
	assert.Equal(t, "Ябълка", fruits[0].Name)

	cats, err := svc.Foods.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DAIRY", "FRUITS", "GRAINS", "PROTEIN"}, cats)

	soups, err := svc.Recipes.ByGoal(ctx, model.GoalLoseWeight)
	require.NoError(t, err)
	require.Len(t, soups, 1)
	assert.Equal(t, "Таратор", soups[0].Name)

	_, err = svc.Foods.Get(ctx, 99)
	assert.True(t, api.IsNotFound(err))
}

func TestCatalog_CategoryInUse(t *testing.T) {
	h := newHarness(t)
	admin, _ := h.signIn(t, "admin", "admin-pass")

	err := admin.ExerciseCategories.Delete(context.Background(), 1)
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))
}

func TestRecipes_OwnedByCreator(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ivan, ivanUser := h.signIn(t, "ivan", "ivan-pass")
	admin, _ := h.signIn(t, "admin", "admin-pass")

	recipe, err := ivan.Recipes.Create(ctx, model.Recipe{Name: "Мусака", Servings: 6, CreatorID: 1})
	require.NoError(t, err)
	assert.Equal(t, ivanUser.ID, recipe.CreatorID)

	mine, err := ivan.Recipes.ByUser(ctx, ivanUser.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := admin.Recipes.Create(ctx, model.Recipe{Name: "Баница", Servings: 8})
	require.NoError(t, err)
	other.Name = "Тиквеник"
	_, err = ivan.Recipes.Update(ctx, other.ID, other)
	assert.True(t, api.IsForbidden(err))

	// admins may edit anything; ownership sticks
	recipe.Name = "Мусака с картофи"
	updated, err := admin.Recipes.Update(ctx, recipe.ID, recipe)
	require.NoError(t, err)
	assert.Equal(t, ivanUser.ID, updated.CreatorID)
}

func TestDiary_AddAndSummarize(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	entry, err := svc.FoodDiary.Create(ctx, model.CreateFoodDiaryEntry{MealType: model.RecipeSoup, RecipeID: 1, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, user.ID, entry.UserID)
	assert.Equal(t, "2024-05-01", entry.Date)
	assert.InDelta(t, 240, entry.Calories, 1e-9)
	assert.InDelta(t, 10, entry.Macronutrients.Protein, 1e-9)

	_, err = svc.FoodDiary.Create(ctx, model.CreateFoodDiaryEntry{MealType: model.RecipeBreakfast, RecipeID: 99, Quantity: 1})
	assert.True(t, api.IsNotFound(err))

	today, err := svc.FoodDiary.ByUser(ctx, user.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Len(t, today, 1)
	other, err := svc.FoodDiary.ByUser(ctx, user.ID, "2024-04-30")
	require.NoError(t, err)
	assert.Empty(t, other)

	stats, err := svc.FoodDiary.NutritionSummary(ctx, user.ID, "2024-05-01")
	require.NoError(t, err)
	assert.InDelta(t, 240, stats.TotalCalories, 1e-9)
	assert.InDelta(t, defaultGoalCalories-240, stats.CaloriesRemaining, 1e-9)
	assert.Len(t, stats.Meals, 1)

	_, err = svc.FoodDiary.ByUser(ctx, 1, "")
	assert.True(t, api.IsForbidden(err))

	require.NoError(t, svc.FoodDiary.Delete(ctx, entry.ID))
}

func TestProgress_Range(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	for _, at := range []string{"2024-04-28T08:00:00Z", "2024-04-30T18:00:00Z", "2024-05-03T07:00:00Z"} {
		_, err := svc.WorkoutProgress.Create(ctx, model.WorkoutProgress{ExerciseID: 3, CompletedAt: at, CompletedSets: 3, DifficultyRating: 6})
		require.NoError(t, err)
	}
	stamped, err := svc.WorkoutProgress.Create(ctx, model.WorkoutProgress{ExerciseID: 1, DifficultyRating: 5})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Format(time.RFC3339), stamped.CompletedAt)
	assert.Equal(t, user.ID, stamped.UserID)

	inRange, err := svc.WorkoutProgress.ByRange(ctx, user.ID, "2024-04-30", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, "2024-04-30T18:00:00Z", inRange[0].CompletedAt)

	all, err := svc.WorkoutProgress.ByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestDailyPlans_ActiveAndDeactivate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	_, err := svc.DailyPlans.Active(ctx, user.ID)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))

	plan, err := svc.DailyPlans.Create(ctx, model.DailyPlan{Name: "Сушене", StartDate: "2024-05-01", Active: true})
	require.NoError(t, err)
	assert.Equal(t, user.ID, plan.UserID)

	active, err := svc.DailyPlans.Active(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, active.ID)

	require.NoError(t, svc.DailyPlans.DeactivateAll(ctx, user.ID))
	_, err = svc.DailyPlans.Active(ctx, user.ID)
	assert.True(t, api.IsNotFound(err))

	plans, err := svc.DailyPlans.ByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.False(t, plans[0].Active)
}

func TestMiddleware_RequestIDAndAccessLog(t *testing.T) {
	h := newHarness(t)

	req, err := http.NewRequest(http.MethodGet, h.baseURL()+"/nowhere", nil)
	require.NoError(t, err)
	req.Header.Set(headerRequestID, "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(headerRequestID))

	entries := h.logs.FilterMessage("request").FilterField(zap.String("request_id", "req-123")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])

	resp, err = http.Get(h.baseURL() + "/nowhere")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_server_error", body.Error)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["panic"])
}

func TestDecode_BadBody(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Post(h.baseURL()+"/auth/login", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_StartShutdown(t *testing.T) {
	srv, err := New(Config{Addr: "127.0.0.1:0", Secret: "s"})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	require.Eventually(t, func() bool { return srv.Addr() != "127.0.0.1:0" }, time.Second, 10*time.Millisecond)
	resp, err := http.Get("http://" + srv.Addr() + BasePath + "/exercise")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}
