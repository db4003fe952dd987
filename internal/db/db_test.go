package db

import (
	"strings"
	"testing"
	"time"

	"github.com/zulandar/portfolio/internal/config"
	"github.com/zulandar/portfolio/internal/models"
	"gorm.io/gorm"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "sqlite file",
			cfg:  config.DatabaseConfig{Driver: config.DriverSQLite, Path: "portfolio.db"},
			want: "portfolio.db",
		},
		{
			name: "mysql with password",
			cfg:  config.DatabaseConfig{Driver: config.DriverMySQL, Host: "10.0.0.5", Port: 3307, User: "pmo", Password: "pw", Name: "portfolio"},
			want: "pmo:pw@tcp(10.0.0.5:3307)/portfolio?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		},
		{
			name: "mysql without password",
			cfg:  config.DatabaseConfig{Driver: config.DriverMySQL, Host: "db", Port: 3306, User: "root", Name: "pf"},
			want: "root@tcp(db:3306)/pf?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		},
		{
			name: "postgres",
			cfg:  config.DatabaseConfig{Driver: config.DriverPostgres, Host: "pg", Port: 5432, User: "u", Password: "p", Name: "pf", SSLMode: "require"},
			want: "postgres://u:p@pg:5432/pf?sslmode=require",
		},
		{
			name: "postgres password with space and quote",
			cfg:  config.DatabaseConfig{Driver: config.DriverPostgres, Host: "pg", Port: 5432, User: "u", Password: "a b'c@d", Name: "pf", SSLMode: "disable"},
			want: "postgres://u:a%20b%27c%40d@pg:5432/pf?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DSN(tt.cfg)
			if err != nil {
				t.Fatalf("DSN: %v", err)
			}
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSN_UnknownDriver(t *testing.T) {
	_, err := DSN(config.DatabaseConfig{Driver: "oracle"})
	if err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("err = %v, want unsupported driver", err)
	}
}

func TestDescribe_HidesPassword(t *testing.T) {
	got := describe(config.DatabaseConfig{Driver: config.DriverPostgres, Host: "pg", Port: 5432, Password: "hunter2", Name: "pf"})
	if strings.Contains(got, "hunter2") {
		t.Errorf("describe leaked password: %s", got)
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestAllModels_Count(t *testing.T) {
	if got := len(AllModels()); got != 6 {
		t.Errorf("AllModels() returned %d models, want 6", got)
	}
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := testDB(t)
	for _, table := range []string{"projects", "tasks", "risks", "project_notes", "sponsors", "team_members"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing after migrate", table)
		}
	}
	if !db.Migrator().HasColumn(&models.Project{}, "date_changes") {
		t.Error("projects.date_changes column missing")
	}
}

func TestSeedSponsors_Idempotent(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 2; i++ {
		if err := SeedSponsors(db, config.DefaultAreas); err != nil {
			t.Fatalf("SeedSponsors run %d: %v", i, err)
		}
	}
	var count int64
	db.Model(&models.Sponsor{}).Count(&count)
	if int(count) != len(config.DefaultAreas) {
		t.Errorf("sponsor count = %d, want %d", count, len(config.DefaultAreas))
	}
}

func TestSeedExample(t *testing.T) {
	db := testDB(t)
	today := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	inserted, err := SeedExample(db, today)
	if err != nil {
		t.Fatalf("SeedExample: %v", err)
	}
	if !inserted {
		t.Fatal("expected example to be inserted into empty db")
	}

	var p models.Project
	if err := db.First(&p).Error; err != nil {
		t.Fatalf("load project: %v", err)
	}
	if p.EndDateRevisions != 0 || p.Archived {
		t.Errorf("seeded project = %+v", p)
	}
	var tasks []models.Task
	db.Where("project_id = ?", p.ID).Find(&tasks)
	if len(tasks) != 1 || tasks[0].Status != models.TaskTodo {
		t.Errorf("seeded tasks = %+v", tasks)
	}

	inserted, err = SeedExample(db, today)
	if err != nil {
		t.Fatalf("SeedExample second run: %v", err)
	}
	if inserted {
		t.Error("second SeedExample should be a no-op")
	}
}

func TestDropAll(t *testing.T) {
	db := testDB(t)
	if err := DropAll(db); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if db.Migrator().HasTable("projects") {
		t.Error("projects table should be gone")
	}
}
