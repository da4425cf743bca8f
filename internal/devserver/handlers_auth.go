package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitnessdump/fitdump/internal/model"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type validateRequest struct {
	Token string `json:"token"`
}

type messageBody struct {
	Message string `json:"message"`
}

// AddUser creates an account directly, bypassing registration. Usernames
// are unique.
func (s *Server) AddUser(req model.RegisterRequest, role model.Role) (model.User, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}
	if role == "" {
		role = model.RoleUser
	}
	s.signupMu.Lock()
	defer s.signupMu.Unlock()
	if _, taken := s.findAccount(req.Username); taken {
		return model.User{}, errUsernameTaken
	}
	a := s.users.insert(account{
		User: model.User{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      role,
		},
		hash: hash,
	})
	return a.User, nil
}

func (s *Server) findAccount(username string) (account, bool) {
	return s.users.first(func(a account) bool {
		return strings.EqualFold(a.Username, username)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	a, ok := s.findAccount(req.Username)
	if !ok || !checkPassword(a.hash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Невалидно потребителско име или парола")
		return
	}
	s.writeSession(w, a.User)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := s.AddUser(req, model.RoleUser)
	switch {
	case errors.Is(err, errUsernameTaken):
		writeError(w, http.StatusConflict, "Потребителското име вече е заето")
		return
	case errors.Is(err, errPasswordTooLong):
		writeError(w, http.StatusBadRequest, "Паролата е твърде дълга")
		return
	case err != nil:
		s.logger.Error("register failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Регистрацията не беше успешна")
		return
	}
	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	writeJSON(w, http.StatusCreated, messageBody{Message: "Регистрацията е успешна"})
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decode(w, r, &req) {
		return
	}
	s.refreshMu.Lock()
	userID, ok := s.refresh[req.RefreshToken]
	delete(s.refresh, req.RefreshToken)
	s.refreshMu.Unlock()

	a, found := s.users.get(userID)
	if !ok || !found {
		writeError(w, http.StatusUnauthorized, "Невалиден токен за опресняване")
		return
	}
	s.writeSession(w, a.User)
}

func (s *Server) validateToken(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.tokens.verify(req.Token); err != nil {
		writeError(w, http.StatusUnauthorized, "Невалиден или изтекъл токен")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	s.refreshMu.Lock()
	for token, userID := range s.refresh {
		if userID == p.UserID {
			delete(s.refresh, token)
		}
	}
	s.refreshMu.Unlock()
	writeJSON(w, http.StatusOK, messageBody{Message: "Излязохте успешно"})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfile
	if !decode(w, r, &req) {
		return
	}
	p, _ := principalFrom(r.Context())
	a, ok := s.users.get(p.UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "Потребителят не е намерен")
		return
	}
	a.FirstName, a.LastName, a.Email = req.FirstName, req.LastName, req.Email
	s.users.replace(a.ID, a)
	writeJSON(w, http.StatusOK, a.User)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePassword
	if !decode(w, r, &req) {
		return
	}
	p, _ := principalFrom(r.Context())
	a, ok := s.users.get(p.UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "Потребителят не е намерен")
		return
	}
	if !checkPassword(a.hash, req.CurrentPassword) {
		writeError(w, http.StatusBadRequest, "Текущата парола е грешна")
		return
	}
	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Новите пароли не съвпадат")
		return
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Паролата е твърде дълга")
		return
	}
	a.hash = hash
	s.users.replace(a.ID, a)
	writeJSON(w, http.StatusOK, messageBody{Message: "Паролата е сменена"})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, _ := principalFrom(r.Context())
	if !p.canAccess(id) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	a, ok := s.users.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Потребителят не е намерен")
		return
	}
	writeJSON(w, http.StatusOK, a.User)
}

func (s *Server) writeSession(w http.ResponseWriter, u model.User) {
	token, err := s.tokens.issue(u)
	if err != nil {
		s.logger.Error("sign token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Възникна неочаквана грешка")
		return
	}
	refresh := uuid.NewString()
	s.refreshMu.Lock()
	s.refresh[refresh] = u.ID
	s.refreshMu.Unlock()

	writeJSON(w, http.StatusOK, model.AuthResponse{Token: token, RefreshToken: refresh, User: u})
}
