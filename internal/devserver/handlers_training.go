package devserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fitnessdump/fitdump/internal/model"
)

func (s *Server) mealPlanRoutes(r chi.Router) {
	c := crud[model.MealPlan]{
		table:    s.mealPlans,
		notFound: "Хранителният план не е намерен",
		owner:    func(p model.MealPlan) int64 { return p.UserID },
		assign:   func(p *model.MealPlan, userID int64) { p.UserID = userID },
		private:  true,
	}
	r.Get("/", c.list)
	r.Post("/", c.create)
	r.Get("/user/{userId}", s.mealPlansByUser)
	r.Get("/user/{userId}/goal/{goal}", s.mealPlansByUser)
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
	r.Get("/{id}/nutrition-summary", s.mealPlanSummary)
	r.Get("/{id}/days/{day}/calories", s.dayCalories)
	r.Post("/{id}/days/{day}/meals", s.addMeal)
	r.Put("/{id}/days/{day}/meals/{mealId}", s.updateMeal)
	r.Delete("/{id}/days/{day}/meals/{mealId}", s.removeMeal)
}

// mealPlansByUser also serves the goal filter when the route has one.
func (s *Server) mealPlansByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	goal := model.Goal(chi.URLParam(r, "goal"))
	writeJSON(w, http.StatusOK, s.mealPlans.list(func(p model.MealPlan) bool {
		return p.UserID == userID && (goal == "" || p.Goal == goal)
	}))
}

// mealPlan loads {id} and checks the caller owns it.
func (s *Server) mealPlan(w http.ResponseWriter, r *http.Request) (model.MealPlan, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return model.MealPlan{}, false
	}
	plan, ok := s.mealPlans.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Хранителният план не е намерен")
		return model.MealPlan{}, false
	}
	p, _ := principalFrom(r.Context())
	if !p.canAccess(plan.UserID) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return model.MealPlan{}, false
	}
	return plan, true
}

func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 || day > 7 {
		writeError(w, http.StatusBadRequest, "Денят трябва да е между 1 и 7")
		return 0, false
	}
	return day, true
}

func (s *Server) mealPlanSummary(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.mealPlan(w, r)
	if !ok {
		return
	}
	var sum model.NutritionSummary
	for _, d := range plan.Days {
		for _, m := range d.Meals {
			sum.TotalCalories += m.TotalCalories
			sum.TotalProtein += m.TotalProtein
			sum.TotalFats += m.TotalFats
			sum.TotalCarbs += m.TotalCarbs
		}
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) dayCalories(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.mealPlan(w, r)
	if !ok {
		return
	}
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var kcal float64
	for _, d := range plan.Days {
		if d.DayOfWeek == day {
			for _, m := range d.Meals {
				kcal += m.TotalCalories
			}
		}
	}
	writeJSON(w, http.StatusOK, kcal)
}

// totals fills in the meal totals from its items when the client sent none.
func totals(m *model.Meal) {
	if m.TotalCalories > 0 {
		return
	}
	for _, it := range m.Items {
		m.TotalCalories += it.Calories
		m.TotalProtein += it.Protein
		m.TotalFats += it.Fats
		m.TotalCarbs += it.Carbs
	}
}

func (s *Server) addMeal(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.mealPlan(w, r)
	if !ok {
		return
	}
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var meal model.Meal
	if !decode(w, r, &meal) {
		return
	}
	meal.ID = s.mealSeq.Add(1)
	totals(&meal)

	s.mealPlans.modify(func(p model.MealPlan) bool { return p.ID == plan.ID }, func(p *model.MealPlan) {
		p.Days = copyDays(p.Days)
		for i := range p.Days {
			if p.Days[i].DayOfWeek == day {
				p.Days[i].Meals = append(p.Days[i].Meals, meal)
				return
			}
		}
		p.Days = append(p.Days, model.MealPlanDay{DayOfWeek: day, Meals: []model.Meal{meal}})
	})
	writeJSON(w, http.StatusCreated, meal)
}

func (s *Server) updateMeal(w http.ResponseWriter, r *http.Request) {
	s.editMeal(w, r, func(meals []model.Meal, i int, body model.Meal) []model.Meal {
		meals[i] = body
		return meals
	})
}

func (s *Server) removeMeal(w http.ResponseWriter, r *http.Request) {
	s.editMeal(w, r, func(meals []model.Meal, i int, _ model.Meal) []model.Meal {
		return append(meals[:i], meals[i+1:]...)
	})
}

// editMeal finds {mealId} on {day} of plan {id} and applies edit to it.
// Removal has no body.
func (s *Server) editMeal(w http.ResponseWriter, r *http.Request, edit func([]model.Meal, int, model.Meal) []model.Meal) {
	plan, ok := s.mealPlan(w, r)
	if !ok {
		return
	}
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	mealID, ok := pathID(w, r, "mealId")
	if !ok {
		return
	}
	var body model.Meal
	if r.Method != http.MethodDelete {
		if !decode(w, r, &body) {
			return
		}
		body.ID = mealID
		totals(&body)
	}

	found := false
	s.mealPlans.modify(func(p model.MealPlan) bool { return p.ID == plan.ID }, func(p *model.MealPlan) {
		p.Days = copyDays(p.Days)
		for i := range p.Days {
			if p.Days[i].DayOfWeek != day {
				continue
			}
			for j := range p.Days[i].Meals {
				if p.Days[i].Meals[j].ID == mealID {
					p.Days[i].Meals = edit(p.Days[i].Meals, j, body)
					found = true
					return
				}
			}
		}
	})
	switch {
	case !found:
		writeError(w, http.StatusNotFound, "Храненето не е намерено")
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusOK, body)
	}
}

// copyDays deep-copies days and their meal slices. Rows handed out by list
// share them.
func copyDays(days []model.MealPlanDay) []model.MealPlanDay {
	out := make([]model.MealPlanDay, len(days))
	for i, d := range days {
		d.Meals = append([]model.Meal(nil), d.Meals...)
		out[i] = d
	}
	return out
}

func (s *Server) programRoutes(r chi.Router) {
	c := crud[model.TrainingProgram]{
		table:    s.programs,
		notFound: "Програмата не е намерена",
		owner:    func(p model.TrainingProgram) int64 { return p.UserID },
		assign:   func(p *model.TrainingProgram, userID int64) { p.UserID = userID },
		private:  true,
	}
	r.Get("/", c.list)
	r.Get("/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userParam(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.programs.list(func(p model.TrainingProgram) bool { return p.UserID == userID }))
	})
	// POST /{id} creates a program owned by user {id}.
	r.Post("/{id}", createFor(c))
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

func (s *Server) sessionRoutes(r chi.Router) {
	c := crud[model.TrainingSession]{
		table:    s.sessions,
		notFound: "Сесията не е намерена",
		owner:    func(t model.TrainingSession) int64 { return t.UserID },
		assign:   func(t *model.TrainingSession, userID int64) { t.UserID = userID },
		private:  true,
	}
	r.Get("/", c.list)
	r.Get("/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userParam(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.sessions.list(func(t model.TrainingSession) bool { return t.UserID == userID }))
	})
	r.Post("/{id}", createFor(c))
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

// createFor inserts a row owned by the user in the {id} path parameter.
func createFor[T row](c crud[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		p, _ := principalFrom(r.Context())
		if !p.canAccess(userID) {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}
		var v T
		if !decode(w, r, &v) {
			return
		}
		c.assign(&v, userID)
		writeJSON(w, http.StatusCreated, c.table.insert(v))
	}
}

func (s *Server) predefinedRoutes(r chi.Router) {
	c := crud[model.PredefinedProgram]{table: s.predefined, notFound: "Програмата не е намерена"}
	r.Get("/", c.list)
	r.Get("/by-goal/{goal}", func(w http.ResponseWriter, r *http.Request) {
		goal := model.ProgramGoal(chi.URLParam(r, "goal"))
		writeJSON(w, http.StatusOK, s.predefined.list(func(p model.PredefinedProgram) bool { return p.Goal == goal }))
	})
	r.Get("/by-difficulty/{level}", func(w http.ResponseWriter, r *http.Request) {
		level := model.DifficultyLevel(chi.URLParam(r, "level"))
		writeJSON(w, http.StatusOK, s.predefined.list(func(p model.PredefinedProgram) bool { return p.DifficultyLevel == level }))
	})
	r.Get("/{id}", c.get)
	r.Post("/copy/{id}/to-user/{userId}", s.copyPredefined)
}

// copyPredefined clones a ready-made program into the user's programs.
func (s *Server) copyPredefined(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	src, ok := s.predefined.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Програмата не е намерена")
		return
	}
	program := model.TrainingProgram{Name: src.Name, Description: src.Description, UserID: userID}
	for _, e := range src.Exercises {
		program.Exercises = append(program.Exercises, model.ProgramExercise{
			ExerciseID: e.ExerciseID,
			DayOfWeek:  e.DayOfWeek,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.SuggestedWeight,
			OrderInDay: e.OrderInDay,
		})
	}
	writeJSON(w, http.StatusCreated, s.programs.insert(program))
}

func (s *Server) settingsRoutes(r chi.Router) {
	c := crud[model.PersonalSettings]{
		table:    s.settings,
		notFound: "Настройките не са намерени",
		owner:    func(p model.PersonalSettings) int64 { return p.UserID },
		assign:   func(p *model.PersonalSettings, userID int64) { p.UserID = userID },
		private:  true,
	}
	r.Get("/", s.settingsOfUser)
	r.Post("/", s.saveSettings)
	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userQuery(w, r)
		if !ok {
			return
		}
		_, found := s.settingsFor(userID)
		writeJSON(w, http.StatusOK, found)
	})
	r.Get("/getUser", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userQuery(w, r)
		if !ok {
			return
		}
		a, found := s.users.get(userID)
		if !found {
			writeError(w, http.StatusNotFound, "Потребителят не е намерен")
			return
		}
		writeJSON(w, http.StatusOK, a.User)
	})
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
}

// userQuery reads ?userId= and checks the caller may see that user's data.
func userQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "Невалиден идентификатор")
		return 0, false
	}
	p, _ := principalFrom(r.Context())
	if !p.canAccess(userID) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return 0, false
	}
	return userID, true
}

func (s *Server) settingsFor(userID int64) (model.PersonalSettings, bool) {
	return s.settings.first(func(p model.PersonalSettings) bool { return p.UserID == userID })
}

func (s *Server) settingsOfUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userQuery(w, r)
	if !ok {
		return
	}
	settings, found := s.settingsFor(userID)
	if !found {
		writeError(w, http.StatusNotFound, "Няма запазени настройки")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// saveSettings keeps one settings row per user, replacing it on save.
func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	var v model.PersonalSettings
	if !decode(w, r, &v) {
		return
	}
	p, _ := principalFrom(r.Context())
	if !p.isAdmin() || v.UserID <= 0 {
		v.UserID = p.UserID
	}
	v.LastCalculation = s.now().Format(dateLayout)
	if existing, found := s.settingsFor(v.UserID); found {
		saved, _ := s.settings.replace(existing.ID, v)
		writeJSON(w, http.StatusOK, saved)
		return
	}
	writeJSON(w, http.StatusCreated, s.settings.insert(v))
}

func (s *Server) ingredientRoutes(r chi.Router) {
	c := crud[model.RecipeIngredient]{table: s.components, notFound: "Съставката не е намерена"}
	r.Get("/", c.list)
	r.Post("/", s.addIngredient)
	r.Get("/recipe/{id}", func(w http.ResponseWriter, r *http.Request) {
		recipeID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.components.list(func(i model.RecipeIngredient) bool { return i.RecipeID == recipeID }))
	})
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

// addIngredient fills in the food name from the catalog.
func (s *Server) addIngredient(w http.ResponseWriter, r *http.Request) {
	var in model.RecipeIngredient
	if !decode(w, r, &in) {
		return
	}
	if _, ok := s.recipes.get(in.RecipeID); !ok {
		writeError(w, http.StatusNotFound, "Рецептата не е намерена")
		return
	}
	food, ok := s.foods.get(in.FoodID)
	if !ok {
		writeError(w, http.StatusNotFound, "Храната не е намерена")
		return
	}
	if in.FoodName == "" {
		in.FoodName = food.Name
	}
	writeJSON(w, http.StatusCreated, s.components.insert(in))
}
