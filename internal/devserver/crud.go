package devserver

import (
	"net/http"
)

const msgForbidden = "Нямате права за тази операция"

// crud serves the standard list/get/create/update/delete routes of a table.
type crud[T row] struct {
	table    *table[T]
	notFound string

	// owner and assign are set for rows that belong to a user. Only the
	// owner or an admin may change such rows.
	owner  func(T) int64
	assign func(v *T, userID int64)
	// private rows are also hidden from other users.
	private bool
}

func (c crud[T]) allowed(p principal, v T) bool {
	return c.owner == nil || p.canAccess(c.owner(v))
}

func (c crud[T]) list(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	var match func(T) bool
	if c.private && !p.isAdmin() {
		match = func(v T) bool { return c.owner(v) == p.UserID }
	}
	writeJSON(w, http.StatusOK, c.table.list(match))
}

func (c crud[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, ok := c.table.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, c.notFound)
		return
	}
	p, _ := principalFrom(r.Context())
	if c.private && !c.allowed(p, v) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (c crud[T]) create(w http.ResponseWriter, r *http.Request) {
	var v T
	if !decode(w, r, &v) {
		return
	}
	p, _ := principalFrom(r.Context())
	if c.owner != nil && (!p.isAdmin() || c.owner(v) <= 0) {
		c.assign(&v, p.UserID)
	}
	writeJSON(w, http.StatusCreated, c.table.insert(v))
}

func (c crud[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	existing, ok := c.table.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, c.notFound)
		return
	}
	p, _ := principalFrom(r.Context())
	if !c.allowed(p, existing) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}

	var v T
	if !decode(w, r, &v) {
		return
	}
	if c.owner != nil {
		c.assign(&v, c.owner(existing))
	}
	updated, ok := c.table.replace(id, v)
	if !ok {
		writeError(w, http.StatusNotFound, c.notFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c crud[T]) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	existing, ok := c.table.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, c.notFound)
		return
	}
	p, _ := principalFrom(r.Context())
	if !c.allowed(p, existing) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return
	}
	c.table.remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// userParam reads {userId} and checks the caller may see that user's data.
func userParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return 0, false
	}
	p, _ := principalFrom(r.Context())
	if !p.canAccess(userID) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return 0, false
	}
	return userID, true
}
