package devserver

import "github.com/fitnessdump/fitdump/internal/model"

// Seed loads a small sample catalog so a fresh server has something to list.
func (s *Server) Seed() {
	chest := s.categories.insert(model.ExerciseCategory{Name: "Гърди", Description: "Упражнения за гръдни мускули"})
	legs := s.categories.insert(model.ExerciseCategory{Name: "Крака", Description: "Упражнения за долните крайници"})
	back := s.categories.insert(model.ExerciseCategory{Name: "Гръб"})

	press := s.exercises.insert(model.Exercise{Name: "Лежанка", Description: "Избутване на щанга от лег", CategoryID: chest.ID})
	s.exercises.insert(model.Exercise{Name: "Лицеви опори", Description: "Опори от пода", CategoryID: chest.ID, MediaType: "gif"})
	squat := s.exercises.insert(model.Exercise{Name: "Клек", Description: "Клек с щанга", CategoryID: legs.ID, MediaType: "video"})
	s.exercises.insert(model.Exercise{Name: "Набиране", Description: "Набиране на лост", CategoryID: back.ID})

	s.foods.insert(model.Food{Name: "Ябълка", Kcal: 52, Protein: 0.3, Fat: 0.2, Carbs: 14, Category: model.FoodFruits})
	s.foods.insert(model.Food{Name: "Пилешко филе", Kcal: 165, Protein: 31, Fat: 3.6, Category: model.FoodProtein})
	yogurt := s.foods.insert(model.Food{Name: "Кисело мляко", Kcal: 63, Protein: 3.5, Fat: 3.6, Carbs: 4.7, Category: model.FoodDairy})
	s.foods.insert(model.Food{Name: "Овесени ядки", Kcal: 389, Protein: 16.9, Fat: 6.9, Carbs: 66, Category: model.FoodGrains})

	var recipes []model.Recipe
	for _, r := range []model.Recipe{
		{
			Name: "Таратор", Description: "Студена супа с кисело мляко и краставици",
			Servings: 4, PreparationTime: 15, RecommendedFor: model.GoalLoseWeight,
			CaloriesPerServing: 120, ProteinPerServing: 5, FatPerServing: 8, CarbsPerServing: 6,
		},
		{
			Name: "Овесена каша", Description: "Овесени ядки с мляко и плодове",
			Servings: 1, PreparationTime: 10, RecommendedFor: model.GoalGainWeight,
			CaloriesPerServing: 350, ProteinPerServing: 12, FatPerServing: 7, CarbsPerServing: 58,
		},
	} {
		recipes = append(recipes, s.recipes.insert(r))
	}
	s.components.insert(model.RecipeIngredient{RecipeID: recipes[0].ID, FoodID: yogurt.ID, FoodName: yogurt.Name, Amount: 400})

	for _, p := range []model.PredefinedProgram{
		{
			Name: "Начална сила", Description: "Три дни в седмицата с основни движения",
			Goal: model.ProgramStrength, DurationWeeks: 4, DifficultyLevel: model.DifficultyBeginner,
			Exercises: []model.PredefinedProgramExercise{
				{ExerciseID: squat.ID, DayOfWeek: 1, Sets: 3, Reps: 8, SuggestedWeight: 40, RestSeconds: 120, OrderInDay: 1},
				{ExerciseID: press.ID, DayOfWeek: 3, Sets: 3, Reps: 8, SuggestedWeight: 30, RestSeconds: 120, OrderInDay: 1},
			},
		},
		{
			Name: "Горене на мазнини", Description: "Кръгова тренировка със собствено тегло",
			Goal: model.ProgramWeightLoss, DurationWeeks: 6, DifficultyLevel: model.DifficultyIntermediate,
		},
	} {
		s.predefined.insert(p)
	}
}
