package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"boardroom-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase ensures the fixed reference data exists: the four lifecycle
// roles, a default admin, the office settings row and a demo location with
// two boardrooms on an empty database.
func SeedDatabase() {
	// ---------------- Roles ----------------
	desiredRoles := []models.Role{
		{Name: models.RoleAdmin, Description: "Full administrative access"},
		{Name: models.RoleManager, Description: "Booking and finance escalation access"},
		{Name: models.RoleFinanceAdmin, Description: "Finance approval for paid bookings"},
		{Name: models.RoleUser, Description: "Internal booker"},
	}

	rolesByName := map[string]models.Role{}
	for i := range desiredRoles {
		role := desiredRoles[i]

		var existing models.Role
		err := DB.Where("name = ?", role.Name).First(&existing).Error
		if err == nil && existing.ID != 0 {
			rolesByName[role.Name] = existing
			continue
		}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to create role %s: %v", role.Name, err)
			continue
		}
		rolesByName[role.Name] = role
	}

	// ---------------- Default admin ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@board.local",
				Password: string(hash),
				RoleID:   rolesByName[models.RoleAdmin].ID,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Office settings ----------------
	var settingCount int64
	DB.Model(&models.OfficeSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.OfficeSetting{
			Name:        "Boardroom Office",
			OpenHour:    8,
			CloseHour:   22,
			SlotMinutes: 30,
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed office settings: %v", err)
		} else {
			log.Println("Office settings seeded")
		}
	}

	// ---------------- Demo location & boardrooms ----------------
	var locCount int64
	DB.Model(&models.Location{}).Count(&locCount)
	if locCount == 0 {
		loc := models.Location{Name: "Head Office", Address: "1 Main Street"}
		if err := DB.Create(&loc).Error; err != nil {
			log.Printf("warning: failed to seed location: %v", err)
		} else {
			rooms := []models.Boardroom{
				{LocationID: &loc.ID, Name: "Boardroom A", RoomCode: "BR-A", Capacity: 10, Floor: "1", Active: true},
				{LocationID: &loc.ID, Name: "Boardroom B", RoomCode: "BR-B", Capacity: 6, Floor: "2", Active: true},
			}
			if err := DB.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed boardrooms: %v", err)
			} else {
				log.Println("Demo boardrooms seeded")
			}
		}
	}

	log.Println("Seed data ensured")
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "boardroom_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Role{},
		&models.Admin{},
		&models.OfficeSetting{},
		&models.Location{},
		&models.Boardroom{},
		&models.User{},
		&models.TokenPool{},
		&models.Booking{},
		&models.PaymentOrder{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
