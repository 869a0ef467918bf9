package service

import (
	"net/mail"
	"strconv"
	"strings"

	"secondplan/config"
	"secondplan/database"
	"secondplan/database/model"
	"secondplan/logger"
	"secondplan/util/crypto"

	"gorm.io/gorm"
)

// rolePrecedence resolves the primary role when a user holds several. The
// order is explicit: join order out of the database is never relied upon.
var rolePrecedence = []string{
	model.RoleAdmin,
	model.RoleManager,
	model.RoleBandMember,
	model.RoleClient,
	model.RoleCustomer,
}

// landingByRole maps the primary role to the post-login redirect target.
var landingByRole = map[string]string{
	model.RoleAdmin:      "/admin/dashboard",
	model.RoleManager:    "/admin/dashboard",
	model.RoleBandMember: "/band/dashboard",
}

// registrationRoles is the allow-list of self-service registration roles.
var registrationRoles = map[string]bool{
	model.RoleBandMember: true,
	model.RoleClient:     true,
	model.RoleCustomer:   true,
}

type UserService struct{}

// CheckUser validates credentials against active users and returns the user
// with roles preloaded, or nil when the credentials do not match.
func (s *UserService) CheckUser(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Preload("Roles").
		Where("email = ? AND status = ?", email, model.UserActive).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// PrimaryRole picks the user's highest-precedence role. Users without any
// role fall back to customer.
func (s *UserService) PrimaryRole(user *model.User) string {
	held := make(map[string]bool, len(user.Roles))
	for _, r := range user.Roles {
		held[r.Name] = true
	}
	for _, name := range rolePrecedence {
		if held[name] {
			return name
		}
	}
	return model.RoleCustomer
}

// LandingPath returns the page a freshly logged-in user is redirected to.
func (s *UserService) LandingPath(role string) string {
	if p, ok := landingByRole[role]; ok {
		return p
	}
	return "/"
}

// Register validates and creates a self-service account, aggregating every
// field problem into a single validation error.
func (s *UserService) Register(name, email, password, confirm, role string) (*model.User, error) {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "Name is required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		problems = append(problems, "A valid email address is required.")
	}
	minLen := config.GetPasswordMinLength()
	if len(password) < minLen {
		problems = append(problems, "Password must be at least "+strconv.Itoa(minLen)+" characters.")
	}
	if password != confirm {
		problems = append(problems, "Passwords do not match.")
	}
	if !registrationRoles[role] {
		problems = append(problems, "Invalid role selection.")
	}
	if len(problems) > 0 {
		return nil, newValidationError(strings.Join(problems, " "), problems...)
	}

	db := database.GetDB()
	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newValidationError("An account with this email already exists.")
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Status:   model.UserActive,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		var r model.Role
		if err := tx.Where("name = ?", role).First(&r).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserRole{UserId: user.Id, RoleId: r.Id}).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsers() ([]model.User, error) {
	db := database.GetDB()
	var users []model.User
	err := db.Preload("Roles").Order("id desc").Find(&users).Error
	return users, err
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()
	var user model.User
	err := db.Preload("Roles").First(&user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser overwrites the mutable profile fields. Last writer wins.
func (s *UserService) UpdateUser(id int, name, email, phone string, status model.UserStatus) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("Name is required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return newValidationError("A valid email address is required.")
	}
	switch status {
	case model.UserActive, model.UserInactive, model.UserSuspended:
	default:
		return newValidationError("Invalid status.")
	}

	db := database.GetDB()
	result := db.Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "email": email, "phone": phone, "status": status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword sets a new bcrypt hash for the user.
func (s *UserService) ResetPassword(id int, password string) error {
	minLen := config.GetPasswordMinLength()
	if len(password) < minLen {
		return newValidationError("Password must be at least " + strconv.Itoa(minLen) + " characters.")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	db := database.GetDB()
	result := db.Model(model.User{}).Where("id = ?", id).Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRoles replaces the user's role set.
func (s *UserService) SetRoles(id int, roleNames []string) error {
	db := database.GetDB()
	var roles []model.Role
	if err := db.Where("name IN ?", roleNames).Find(&roles).Error; err != nil {
		return err
	}
	if len(roles) != len(roleNames) {
		return newValidationError("Unknown role in selection.")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		for _, r := range roles {
			if err := tx.Create(&model.UserRole{UserId: id, RoleId: r.Id}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteUser removes the user and their role links. The join rows go first
// so the foreign key constraint holds throughout.
func (s *UserService) DeleteUser(id int) error {
	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ResetAdminPassword is used by the CLI to recover the seeded admin account.
func (s *UserService) ResetAdminPassword(email, password string) error {
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	db := database.GetDB()
	result := db.Model(model.User{}).Where("email = ?", email).Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
