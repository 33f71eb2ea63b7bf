package database

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HarishP23/OneStop/internal/model"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	teardown, db, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	testDB = db

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		if err := teardown(ctx); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
	if code != 0 {
		log.Fatalf("tests failed with code %d", code)
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	assert.Equal(t, "up", stats["status"])
	assert.NotContains(t, stats, "error")
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestFindAccountByEmail(t *testing.T) {
	ctx := context.Background()

	acc, err := testDB.FindAccountByEmail(ctx, "  STUDENT1@example.com ")
	require.NoError(t, err)
	assert.Equal(t, TestStudent1.ID, acc.ID)
	assert.Equal(t, model.RoleStudent, acc.Role)

	acc, err = testDB.FindAccountByEmail(ctx, TestMentor.Email)
	require.NoError(t, err)
	assert.Equal(t, TestMentor.ID, acc.ID)
	assert.Equal(t, model.RoleMentor, acc.Role)

	_, err = testDB.FindAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindAccountByID(t *testing.T) {
	ctx := context.Background()

	acc, err := testDB.FindAccountByID(ctx, TestRecruiter1.ID)
	require.NoError(t, err)
	assert.Equal(t, TestRecruiter1.Email, acc.Email)

	acc, err = testDB.FindAccountByID(ctx, TestMentor.ID)
	require.NoError(t, err)
	assert.Equal(t, TestMentor.Email, acc.Email)

	_, err = testDB.FindAccountByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEmailTaken(t *testing.T) {
	ctx := context.Background()

	taken, err := testDB.EmailTaken(ctx, TestStudent2.Email)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = testDB.EmailTaken(ctx, "fresh@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUniqueEmailViolation(t *testing.T) {
	dup := model.User{Account: model.Account{
		Email:    TestStudent1.Email,
		Password: "x",
		Role:     model.RoleStudent,
	}}
	err := testDB.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(assert.AnError))
}

func TestApplicationStatusCheckConstraint(t *testing.T) {
	app := model.Application{
		Name:   "X",
		Phone:  "1",
		Resume: "r",
		JobID:  TestJob1.ID,
		UserID: TestStudent2.ID,
		Status: "hired",
	}
	assert.Error(t, testDB.Create(&app).Error)
}

func TestApplicationsAllowDanglingReferences(t *testing.T) {
	app := model.Application{
		Name:   "Dangling",
		Phone:  "1",
		Resume: "r",
		JobID:  uuid.New(),
		UserID: uuid.New(),
	}
	require.NoError(t, testDB.Create(&app).Error)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	require.NoError(t, testDB.Delete(&app).Error)
}

func TestConfigFromSettingsRequiresFields(t *testing.T) {
	cfg := &DBConfig{Host: "localhost"}
	_, err := cfg.getDsn()
	assert.Error(t, err)

	cfg = &DBConfig{useConstr: true}
	_, err = cfg.getDsn()
	assert.Error(t, err)

	cfg = &DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d"}
	dsn, err := cfg.getDsn()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", dsn)
}
