package database

import (
	"time"

	"em-check/internal/config"
	"em-check/internal/models"

	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		logrus.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err == nil {
			logrus.Info("connected to DB successfully")
			break
		}

		logrus.Warnf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		logrus.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.CheckTemplate{},
		&models.CheckRecord{},
	)
	if err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	createSuperAdmin(cfg)
	if cfg.SeedSamples {
		seedSampleTemplates()
	}
}

// createSuperAdmin makes sure exactly one super admin exists. It carries no
// team; its credentials come from config only, never from registration.
func createSuperAdmin(cfg *config.Config) {
	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		logrus.Errorf("failed to check super admin: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Errorf("failed to hash super admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         cfg.SuperAdminName,
		EmployeeID:   cfg.SuperAdminEmployeeID,
		Phone:        "13800000000",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		Team:         nil,
	}

	if err := DB.Create(&admin).Error; err != nil {
		logrus.Errorf("failed to create super admin: %v", err)
		return
	}

	logrus.Infof("created super admin user: %s", admin.EmployeeID)
}

// seedSampleTemplates loads a few demo check sheets so a fresh install has
// something to fill in.
func seedSampleTemplates() {
	type sample struct {
		Name      string
		Team      string
		Structure string
	}

	samples := []sample{
		{
			Name: "Daily Equipment Inspection",
			Team: "Mechanical Team 1",
			Structure: `{
			  "columns": [
			    {"name": "Equipment", "type": "text", "required": true},
			    {"name": "Inspected At", "type": "datetime", "required": true},
			    {"name": "Inspector", "type": "text", "required": true},
			    {"name": "Status", "type": "select", "options": ["Normal", "Abnormal"], "required": true},
			    {"name": "Abnormality", "type": "textarea"},
			    {"name": "Action Taken", "type": "textarea"}
			  ]
			}`,
		},
		{
			Name: "Safety Hazard Inspection",
			Team: "Mechanical Team 2",
			Structure: `{
			  "columns": [
			    {"name": "Area", "type": "text", "required": true},
			    {"name": "Inspection Date", "type": "datetime", "required": true},
			    {"name": "Inspector", "type": "text", "required": true},
			    {"name": "Hazard Level", "type": "select", "options": ["Minor", "Serious", "Critical"], "required": true},
			    {"name": "Description", "type": "textarea", "required": true},
			    {"name": "Responsible", "type": "text", "required": true},
			    {"name": "Deadline", "type": "datetime", "required": true}
			  ]
			}`,
		},
		{
			Name: "Maintenance Log",
			Team: "Mechanical Team 3",
			Structure: `{
			  "columns": [
			    {"name": "Equipment No.", "type": "text", "required": true},
			    {"name": "Maintenance Date", "type": "datetime", "required": true},
			    {"name": "Technician", "type": "text", "required": true},
			    {"name": "Work Done", "type": "textarea", "required": true},
			    {"name": "Parts Replaced", "type": "text"},
			    {"name": "Result", "type": "select", "options": ["Pass", "Fail", "Monitor"], "required": true},
			    {"name": "Notes", "type": "textarea"}
			  ]
			}`,
		},
	}

	var admin models.User
	if err := DB.Where("role = ?", models.RoleSuperAdmin).First(&admin).Error; err != nil {
		logrus.Errorf("failed to find super admin for seeding: %v", err)
		return
	}

	for _, s := range samples {
		var count int64
		if err := DB.Model(&models.CheckTemplate{}).
			Where("name = ? AND team = ?", s.Name, s.Team).
			Count(&count).Error; err != nil {
			logrus.Errorf("failed to check sample template %q: %v", s.Name, err)
			continue
		}
		if count > 0 {
			continue
		}

		tpl := models.CheckTemplate{
			Name:      s.Name,
			Team:      s.Team,
			Structure: s.Structure,
			CreatedBy: admin.ID,
		}
		if err := DB.Create(&tpl).Error; err != nil {
			logrus.Errorf("failed to create sample template %q: %v", s.Name, err)
			continue
		}
		logrus.Infof("seeded sample template: %s (%s)", s.Name, s.Team)
	}
}
