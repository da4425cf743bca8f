package devserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitnessdump/fitdump/internal/model"
)

func TestTable(t *testing.T) {
	tbl := newTable(func(f *model.Food, id int64) { f.ID = id })

	apple := tbl.insert(model.Food{ID: 99, Name: "Ябълка"})
	pear := tbl.insert(model.Food{Name: "Круша"})
	assert.Equal(t, int64(1), apple.ID)
	assert.Equal(t, int64(2), pear.ID)

	_, ok := tbl.replace(7, model.Food{Name: "Слива"})
	assert.False(t, ok)
	renamed, ok := tbl.replace(1, model.Food{ID: 5, Name: "Зелена ябълка"})
	require.True(t, ok)
	assert.Equal(t, int64(1), renamed.ID)

	got, ok := tbl.get(1)
	require.True(t, ok)
	assert.Equal(t, "Зелена ябълка", got.Name)

	n := tbl.modify(func(f model.Food) bool { return f.ID == 2 }, func(f *model.Food) { f.Kcal = 57 })
	assert.Equal(t, 1, n)

	first, ok := tbl.first(func(f model.Food) bool { return f.Kcal > 0 })
	require.True(t, ok)
	assert.Equal(t, "Круша", first.Name)

	assert.True(t, tbl.remove(1))
	assert.False(t, tbl.remove(1))
	assert.Len(t, tbl.list(nil), 1)

	// ids are never reused
	assert.Equal(t, int64(3), tbl.insert(model.Food{Name: "Дюля"}).ID)
}

func TestPasswords(t *testing.T) {
	hash, err := hashPassword("secret")
	require.NoError(t, err)
	assert.True(t, checkPassword(hash, "secret"))
	assert.False(t, checkPassword(hash, "Secret"))

	long := make([]byte, maxPasswordBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = hashPassword(string(long))
	assert.ErrorIs(t, err, errPasswordTooLong)
	assert.False(t, checkPassword(hash, string(long)))

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
