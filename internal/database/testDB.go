package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"

	m "github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded accounts, jobs and applications
var (
	TestStudent1   m.User
	TestStudent2   m.User
	TestRecruiter1 m.User
	TestRecruiter2 m.User
	TestMentor     m.Mentor

	// Plain password shared by every seeded account
	TestSeedPassword = "SeedPass123!"

	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job

	TestApplication1 m.Application
	TestApplication2 m.Application
	TestApplication3 m.Application
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	account := func(email, role, name, phone string) m.Account {
		return m.Account{
			Email:       email,
			Password:    hashedPwd,
			Role:        role,
			FullName:    name,
			PhoneNumber: phone,
		}
	}

	TestStudent1 = m.User{Account: account("student1@example.com", m.RoleStudent, "Alice Nguyen", "0100000001")}
	TestStudent2 = m.User{Account: account("student2@example.com", m.RoleStudent, "Bob Somsak", "0100000002")}
	TestRecruiter1 = m.User{Account: account("recruiter1@example.com", m.RoleRecruiter, "Rita Tech", "0200000001")}
	TestRecruiter2 = m.User{Account: account("recruiter2@example.com", m.RoleRecruiter, "Ravi Data", "0200000002")}
	for _, u := range []*m.User{&TestStudent1, &TestStudent2, &TestRecruiter1, &TestRecruiter2} {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	TestMentor = m.Mentor{Account: account("mentor@example.com", m.RoleMentor, "Maya Mentor", "0300000001")}
	if err := db.Create(&TestMentor).Error; err != nil {
		return err
	}

	TestJob1 = m.Job{
		RecruiterID: TestRecruiter1.ID,
		EditableJobInfo: m.EditableJobInfo{
			Position:    "Backend Engineer Intern",
			Company:     "TechNova",
			Location:    "Bangkok (Hybrid)",
			Type:        "Internship",
			Salary:      "15000 THB",
			Description: "Work on Go services and database layers.",
			Tags:        pq.StringArray{"go", "backend", "api"},
			Details:     datatypes.JSONMap{"openings": float64(2), "remote": false},
		},
	}
	TestJob2 = m.Job{
		RecruiterID: TestRecruiter1.ID,
		EditableJobInfo: m.EditableJobInfo{
			Position:    "Frontend Developer Intern",
			Company:     "TechNova",
			Location:    "Remote",
			Type:        "Internship",
			Salary:      "12000 THB",
			Description: "Assist building a component library in React.",
			Tags:        pq.StringArray{"react", "typescript", "ui"},
		},
	}
	TestJob3 = m.Job{
		RecruiterID: TestRecruiter2.ID,
		EditableJobInfo: m.EditableJobInfo{
			Position:    "Data Analyst",
			Company:     "DataForge",
			Location:    "Chiang Mai (On-site)",
			Type:        "Full-time",
			Salary:      "30000 THB",
			Description: "Support data cleansing and dashboard creation.",
			Tags:        pq.StringArray{"data", "sql", "analytics"},
		},
	}
	for _, j := range []*m.Job{&TestJob1, &TestJob2, &TestJob3} {
		if err := db.Create(j).Error; err != nil {
			return err
		}
	}

	TestApplication1 = m.Application{
		Name:     TestStudent1.FullName,
		Phone:    TestStudent1.PhoneNumber,
		Resume:   "https://files.example.com/alice.pdf",
		JobID:    TestJob1.ID,
		UserID:   TestStudent1.ID,
		JobTitle: TestJob1.Position,
	}
	TestApplication2 = m.Application{
		Name:     TestStudent1.FullName,
		Phone:    TestStudent1.PhoneNumber,
		Resume:   "https://files.example.com/alice.pdf",
		JobID:    TestJob3.ID,
		UserID:   TestStudent1.ID,
		JobTitle: TestJob3.Position,
		Status:   m.ApplicationStatusAccepted,
	}
	TestApplication3 = m.Application{
		Name:     TestStudent2.FullName,
		Phone:    TestStudent2.PhoneNumber,
		Resume:   "https://files.example.com/bob.pdf",
		JobID:    TestJob2.ID,
		UserID:   TestStudent2.ID,
		JobTitle: TestJob2.Position,
	}
	for _, a := range []*m.Application{&TestApplication1, &TestApplication2, &TestApplication3} {
		if err := db.Create(a).Error; err != nil {
			return err
		}
	}

	return nil
}
