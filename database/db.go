package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"secondplan/config"
	"secondplan/database/model"
	"secondplan/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@secondplan.local"
	defaultAdminPassword = "Admin@123"
)

// seedRoles is the static role reference data. Order matters nowhere; the
// primary-role precedence lives in the user service.
var seedRoles = []model.Role{
	{Name: model.RoleAdmin, Description: "Full access to every panel"},
	{Name: model.RoleManager, Description: "Band manager, admin panel access"},
	{Name: model.RoleBandMember, Description: "Band member, band panel access"},
	{Name: model.RoleClient, Description: "Booking client"},
	{Name: model.RoleCustomer, Description: "Merchandise customer"},
}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Booking{},
		&model.Event{},
		&model.Expense{},
		&model.Merchandise{},
		&model.Task{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func initRoles() error {
	for _, role := range seedRoles {
		err := db.Where(model.Role{Name: role.Name}).FirstOrCreate(&role).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func initAdminUser() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	hash, err := crypto.HashPasswordAsBcrypt(defaultAdminPassword)
	if err != nil {
		return err
	}
	user := &model.User{
		Name:     defaultAdminName,
		Email:    defaultAdminEmail,
		Password: hash,
		Status:   model.UserActive,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}
	return db.Create(&model.UserRole{UserId: user.Id, RoleId: adminRole.Id}).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	if err := initRoles(); err != nil {
		return err
	}
	if err := initAdminUser(); err != nil {
		return err
	}

	return nil
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
