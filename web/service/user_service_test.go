package service

import (
	"os"
	"testing"

	"secondplan/database"
	"secondplan/database/model"

	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) {
	t.Helper()
	dbPath := "test.db"
	os.Remove(dbPath)
	if err := database.InitDB(dbPath); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	})
}

func TestSeededAdminLogin(t *testing.T) {
	setup(t)

	service := UserService{}

	user := service.CheckUser("admin@secondplan.local", "Admin@123")
	assert.NotNil(t, user)
	assert.Equal(t, model.RoleAdmin, service.PrimaryRole(user))
	assert.Equal(t, "/admin/dashboard", service.LandingPath(model.RoleAdmin))

	assert.Nil(t, service.CheckUser("admin@secondplan.local", "wrong"))
	assert.Nil(t, service.CheckUser("nobody@secondplan.local", "Admin@123"))
}

func TestRegisterThenLogin(t *testing.T) {
	setup(t)

	service := UserService{}

	user, err := service.Register("Sam Drummer", "sam@example.com", "supersecret", "supersecret", model.RoleBandMember)
	assert.NoError(t, err)
	assert.NotZero(t, user.Id)

	loggedIn := service.CheckUser("sam@example.com", "supersecret")
	assert.NotNil(t, loggedIn)
	assert.Equal(t, model.RoleBandMember, service.PrimaryRole(loggedIn))
	assert.Equal(t, "/band/dashboard", service.LandingPath(model.RoleBandMember))
}

func TestRegisterValidationAggregatesProblems(t *testing.T) {
	setup(t)

	service := UserService{}

	_, err := service.Register("", "not-an-email", "short", "different", "admin")
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Len(t, vErr.Fields, 5)
	assert.Contains(t, vErr.Message, "Name is required.")
	assert.Contains(t, vErr.Message, "valid email")
	assert.Contains(t, vErr.Message, "Passwords do not match.")
	assert.Contains(t, vErr.Message, "Invalid role selection.")

	// Nothing persisted on validation failure.
	users, err := service.GetUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1) // seeded admin only
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup(t)

	service := UserService{}
	_, err := service.Register("A", "dup@example.com", "supersecret", "supersecret", model.RoleCustomer)
	assert.NoError(t, err)

	_, err = service.Register("B", "dup@example.com", "supersecret", "supersecret", model.RoleCustomer)
	assert.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestPrimaryRolePrecedence(t *testing.T) {
	service := UserService{}

	user := &model.User{Roles: []model.Role{
		{Name: model.RoleCustomer},
		{Name: model.RoleBandMember},
		{Name: model.RoleManager},
	}}
	assert.Equal(t, model.RoleManager, service.PrimaryRole(user))

	user.Roles = append(user.Roles, model.Role{Name: model.RoleAdmin})
	assert.Equal(t, model.RoleAdmin, service.PrimaryRole(user))

	assert.Equal(t, model.RoleCustomer, service.PrimaryRole(&model.User{}))
}

func TestResetPasswordAndUpdateUser(t *testing.T) {
	setup(t)

	service := UserService{}
	user, err := service.Register("Pat", "pat@example.com", "firstpass1", "firstpass1", model.RoleClient)
	assert.NoError(t, err)

	assert.NoError(t, service.ResetPassword(user.Id, "secondpass2"))
	assert.Nil(t, service.CheckUser("pat@example.com", "firstpass1"))
	assert.NotNil(t, service.CheckUser("pat@example.com", "secondpass2"))

	assert.NoError(t, service.UpdateUser(user.Id, "Pat Q", "pat@example.com", "555-0101", model.UserSuspended))
	assert.Nil(t, service.CheckUser("pat@example.com", "secondpass2"), "suspended users cannot log in")

	assert.ErrorIs(t, service.UpdateUser(9999, "X", "x@example.com", "", model.UserActive), ErrNotFound)
	assert.ErrorIs(t, service.ResetPassword(9999, "whatever123"), ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	setup(t)

	service := UserService{}
	user, err := service.Register("Gone", "gone@example.com", "password1", "password1", model.RoleCustomer)
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteUser(user.Id))
	_, err = service.GetUser(user.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	var links int64
	assert.NoError(t, database.GetDB().Model(model.UserRole{}).Where("user_id = ?", user.Id).Count(&links).Error)
	assert.Zero(t, links, "role links removed with the user")

	assert.ErrorIs(t, service.DeleteUser(user.Id), ErrNotFound)
}
