package devserver

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fitnessdump/fitdump/internal/model"
)

func (s *Server) exerciseRoutes(r chi.Router) {
	c := crud[model.Exercise]{table: s.exercises, notFound: "Упражнението не е намерено"}
	r.Get("/", c.list)
	r.Get("/search", s.searchExercises)
	r.Get("/category/{id}", s.exercisesByCategory)
	r.Get("/{id}", c.get)
	r.With(requireAdmin).Post("/add", c.create)
	r.With(requireAdmin).Put("/{id}", c.update)
	r.With(requireAdmin).Delete("/{id}", c.remove)
}

func (s *Server) searchExercises(w http.ResponseWriter, r *http.Request) {
	q := searchTerm(r)
	writeJSON(w, http.StatusOK, s.exercises.list(func(e model.Exercise) bool {
		return contains(e.Name, q) || contains(e.Description, q)
	}))
}

func (s *Server) exercisesByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.exercises.list(func(e model.Exercise) bool { return e.CategoryID == id }))
}

func (s *Server) categoryRoutes(r chi.Router) {
	c := crud[model.ExerciseCategory]{table: s.categories, notFound: "Категорията не е намерена"}
	r.Get("/", c.list)
	r.Get("/{id}", c.get)
	r.With(requireAdmin).Post("/", c.create)
	r.With(requireAdmin).Put("/{id}", c.update)
	r.With(requireAdmin).Delete("/{id}", s.removeCategory)
}

// removeCategory refuses to orphan exercises.
func (s *Server) removeCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, used := s.exercises.first(func(e model.Exercise) bool { return e.CategoryID == id }); used {
		writeError(w, http.StatusConflict, "Категорията съдържа упражнения")
		return
	}
	crud[model.ExerciseCategory]{table: s.categories, notFound: "Категорията не е намерена"}.remove(w, r)
}

func (s *Server) foodRoutes(r chi.Router) {
	c := crud[model.Food]{table: s.foods, notFound: "Храната не е намерена"}
	r.Get("/", c.list)
	r.Get("/search", s.searchFoods)
	r.Get("/categories", s.foodCategories)
	r.Get("/category/{category}", s.foodsByCategory)
	r.Get("/{id}", c.get)
	r.With(requireAdmin).Post("/", c.create)
	r.With(requireAdmin).Put("/{id}", c.update)
	r.With(requireAdmin).Delete("/{id}", c.remove)
}

func (s *Server) searchFoods(w http.ResponseWriter, r *http.Request) {
	q := searchTerm(r)
	writeJSON(w, http.StatusOK, s.foods.list(func(f model.Food) bool { return contains(f.Name, q) }))
}

func (s *Server) foodsByCategory(w http.ResponseWriter, r *http.Request) {
	category := model.FoodCategory(chi.URLParam(r, "category"))
	writeJSON(w, http.StatusOK, s.foods.list(func(f model.Food) bool { return f.Category == category }))
}

func (s *Server) foodCategories(w http.ResponseWriter, r *http.Request) {
	seen := make(map[model.FoodCategory]struct{})
	out := []string{}
	for _, f := range s.foods.list(nil) {
		if _, ok := seen[f.Category]; ok || f.Category == "" {
			continue
		}
		seen[f.Category] = struct{}{}
		out = append(out, string(f.Category))
	}
	sort.Strings(out)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) recipeRoutes(r chi.Router) {
	c := crud[model.Recipe]{
		table:    s.recipes,
		notFound: "Рецептата не е намерена",
		owner:    func(r model.Recipe) int64 { return r.CreatorID },
		assign:   func(r *model.Recipe, userID int64) { r.CreatorID = userID },
	}
	r.Get("/", c.list)
	r.Get("/search", s.searchRecipes)
	r.Get("/goal/{goal}", s.recipesByGoal)
	r.Get("/user/{userId}", s.recipesByUser)
	r.Get("/{id}", c.get)
	r.Post("/", c.create)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.remove)
}

func (s *Server) searchRecipes(w http.ResponseWriter, r *http.Request) {
	q := searchTerm(r)
	writeJSON(w, http.StatusOK, s.recipes.list(func(rc model.Recipe) bool {
		return contains(rc.Name, q) || contains(rc.Description, q)
	}))
}

func (s *Server) recipesByGoal(w http.ResponseWriter, r *http.Request) {
	goal := model.Goal(chi.URLParam(r, "goal"))
	writeJSON(w, http.StatusOK, s.recipes.list(func(rc model.Recipe) bool { return rc.RecommendedFor == goal }))
}

func (s *Server) recipesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.recipes.list(func(rc model.Recipe) bool { return rc.CreatorID == userID }))
}

func searchTerm(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
}

// contains is a case-insensitive substring match. An empty term matches.
func contains(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
