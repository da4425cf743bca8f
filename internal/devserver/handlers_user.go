package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fitnessdump/fitdump/internal/model"
)

const (
	dateLayout = "2006-01-02"

	// defaultGoalCalories stands in for the backend's calorie calculation.
	defaultGoalCalories = 2000
)

func (s *Server) diaryRoutes(r chi.Router) {
	c := crud[model.FoodDiaryEntry]{
		table:    s.diary,
		notFound: "Записът не е намерен",
		owner:    func(e model.FoodDiaryEntry) int64 { return e.UserID },
		assign:   func(e *model.FoodDiaryEntry, userID int64) { e.UserID = userID },
		private:  true,
	}
	r.Post("/", s.addDiaryEntry)
	r.Get("/nutrition-summary", s.diarySummary)
	r.Get("/user/{userId}", s.diaryByUser)
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

func (s *Server) addDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var req model.CreateFoodDiaryEntry
	if !decode(w, r, &req) {
		return
	}
	recipe, ok := s.recipes.get(req.RecipeID)
	if !ok {
		writeError(w, http.StatusNotFound, "Рецептата не е намерена")
		return
	}
	p, _ := principalFrom(r.Context())
	now := s.now()
	entry := s.diary.insert(model.FoodDiaryEntry{
		UserID:   p.UserID,
		Date:     now.Format(dateLayout),
		MealType: req.MealType,
		RecipeID: recipe.ID,
		Recipe:   &recipe,
		Quantity: req.Quantity,
		Calories: recipe.CaloriesPerServing * req.Quantity,
		Macronutrients: model.Macronutrients{
			Protein:       recipe.ProteinPerServing * req.Quantity,
			Fats:          recipe.FatPerServing * req.Quantity,
			Carbohydrates: recipe.CarbsPerServing * req.Quantity,
		},
		Notes:     req.Notes,
		CreatedAt: now.Format(time.RFC3339),
	})
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) diaryByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	writeJSON(w, http.StatusOK, s.diary.list(func(e model.FoodDiaryEntry) bool {
		return e.UserID == userID && (date == "" || e.Date == date)
	}))
}

func (s *Server) diarySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "Невалиден идентификатор")
		return
	}
	p, _ := principalFrom(r.Context())
	if !p.canAccess(userID) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.now().Format(dateLayout)
	}

	stats := model.DailyNutritionStats{
		Date:         date,
		Meals:        s.diary.list(func(e model.FoodDiaryEntry) bool { return e.UserID == userID && e.Date == date }),
		GoalCalories: defaultGoalCalories,
	}
	for _, e := range stats.Meals {
		stats.TotalCalories += e.Calories
		stats.TotalMacronutrients.Protein += e.Macronutrients.Protein
		stats.TotalMacronutrients.Fats += e.Macronutrients.Fats
		stats.TotalMacronutrients.Carbohydrates += e.Macronutrients.Carbohydrates
		stats.TotalMacronutrients.Fiber += e.Macronutrients.Fiber
		stats.TotalMacronutrients.Sugar += e.Macronutrients.Sugar
	}
	stats.CaloriesRemaining = stats.GoalCalories - stats.TotalCalories
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) progressRoutes(r chi.Router) {
	c := crud[model.WorkoutProgress]{
		table:    s.progress,
		notFound: "Записът за прогрес не е намерен",
		owner:    func(p model.WorkoutProgress) int64 { return p.UserID },
		assign:   func(p *model.WorkoutProgress, userID int64) { p.UserID = userID },
		private:  true,
	}
	r.Get("/", c.list)
	r.Post("/", s.logProgress(c))
	r.Get("/user/{userId}", s.progressByUser)
	r.Get("/user/{userId}/range", s.progressInRange)
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

// logProgress stamps CompletedAt when the client left it empty.
func (s *Server) logProgress(c crud[model.WorkoutProgress]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v model.WorkoutProgress
		if !decode(w, r, &v) {
			return
		}
		p, _ := principalFrom(r.Context())
		if !p.isAdmin() || v.UserID <= 0 {
			v.UserID = p.UserID
		}
		if v.CompletedAt == "" {
			v.CompletedAt = s.now().Format(time.RFC3339)
		}
		writeJSON(w, http.StatusCreated, c.table.insert(v))
	}
}

func (s *Server) progressByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.progress.list(func(p model.WorkoutProgress) bool { return p.UserID == userID }))
}

// progressInRange matches on the date part of CompletedAt, both ends inclusive.
func (s *Server) progressInRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "Задайте начална и крайна дата")
		return
	}
	writeJSON(w, http.StatusOK, s.progress.list(func(p model.WorkoutProgress) bool {
		day := p.CompletedAt
		if len(day) > len(dateLayout) {
			day = day[:len(dateLayout)]
		}
		return p.UserID == userID && day >= start && day <= end
	}))
}

func (s *Server) planRoutes(r chi.Router) {
	c := crud[model.DailyPlan]{
		table:    s.plans,
		notFound: "Дневният план не е намерен",
		owner:    func(p model.DailyPlan) int64 { return p.UserID },
		assign:   func(p *model.DailyPlan, userID int64) { p.UserID = userID },
		private:  true,
	}
	r.Get("/", c.list)
	r.Post("/", c.create)
	r.Get("/user/{userId}", s.plansByUser)
	r.Get("/user/{userId}/active", s.activePlan)
	r.Post("/user/{userId}/deactivate-all", s.deactivatePlans)
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

func (s *Server) plansByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.plans.list(func(p model.DailyPlan) bool { return p.UserID == userID }))
}

func (s *Server) activePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	plan, ok := s.plans.first(func(p model.DailyPlan) bool { return p.UserID == userID && p.Active })
	if !ok {
		writeError(w, http.StatusNotFound, "Няма активен дневен план")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) deactivatePlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	n := s.plans.modify(
		func(p model.DailyPlan) bool { return p.UserID == userID && p.Active },
		func(p *model.DailyPlan) { p.Active = false },
	)
	writeJSON(w, http.StatusOK, map[string]int{"deactivated": n})
}
