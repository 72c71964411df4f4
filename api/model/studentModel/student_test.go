package studentmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/academic-cert-api/test/helpers"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

func TestStudentRepository_CreateAndLookup(t *testing.T) {
	db := helpers.SetupSQLite(t)
	repo := NewStudentRepository(db)

	s := &model.Student{StudentID: "STU0001", Name: "Asha", Email: "asha@example.com", PasswordHash: "x"}
	require.NoError(t, repo.Create(s))
	assert.NotZero(t, s.ID, "Create should assign an id")

	byEmail, err := repo.GetByEmail("asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, s.ID, byEmail.ID)

	byStudentId, err := repo.GetByStudentId("STU0001")
	require.NoError(t, err)
	require.NotNil(t, byStudentId)
	assert.Equal(t, "Asha", byStudentId.Name)

	byId, err := repo.GetById(s.ID)
	require.NoError(t, err)
	require.NotNil(t, byId)
}

func TestStudentRepository_NotFound(t *testing.T) {
	db := helpers.SetupSQLite(t)
	repo := NewStudentRepository(db)

	s, err := repo.GetByEmail("nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestStudentRepository_DuplicateEmail(t *testing.T) {
	db := helpers.SetupSQLite(t)
	repo := NewStudentRepository(db)

	require.NoError(t, repo.Create(&model.Student{StudentID: "STU0001", Name: "A", Email: "dup@example.com", PasswordHash: "x"}))
	err := repo.Create(&model.Student{StudentID: "STU0002", Name: "B", Email: "dup@example.com", PasswordHash: "x"})
	assert.Error(t, err, "email is unique across students")
}
