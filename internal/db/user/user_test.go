package user

import (
	"context"
	"testing"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2024, 3, 15, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	type test struct {
		id    string
		input user.CreateUserInput
	}
	cases := []test{
		{
			id: "with-password",
			input: user.CreateUserInput{
				Email:        c.Email(EMAIL),
				PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
				CreatedAt:    NOW,
			},
		},
		{
			id: "with-full-name",
			input: user.CreateUserInput{
				Email:        c.Email(EMAIL),
				PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
				FullName:     c.NewOptional("Test Test", true),
				CreatedAt:    NOW,
			},
		},
		{
			id: "without-password",
			input: user.CreateUserInput{
				Email:     c.Email(EMAIL),
				CreatedAt: NOW,
			},
		},
	}

	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			defer db.TruncateTables(suite.pool)
			u, err := suite.repo.Create(context.Background(), testcase.input)

			assert := suite.Require()
			assert.Nil(err)
			assert.True(u.ID > 0)
			assert.Equal(testcase.input.Email, u.Email)
			assert.Equal(testcase.input.PasswordHash, u.PasswordHash)
			assert.Equal(testcase.input.FullName, u.FullName)
			assert.True(testcase.input.CreatedAt.Equal(u.CreatedAt))
			assert.False(u.LastLoginAt.IsPresent)
		})
	}
}

func (suite *testSuite) TestCreateDuplicateEmail() {
	suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:     c.Email(EMAIL),
		CreatedAt: NOW,
	})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByID() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(c.Email(EMAIL), u.Email)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), user.ID(111222333))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)
	suite.createUser("other@test.test")

	u, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
}

func (suite *testSuite) TestGetByEmailNotFound() {
	_, err := suite.repo.GetByEmail(context.Background(), c.Email("does-not-exist@test.test"))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createUser(EMAIL)

	err := suite.repo.SetPassword(context.Background(), created.ID, user.PasswordHash("new-password-hash"))

	assert := suite.Require()
	assert.Nil(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(u.PasswordHash.IsPresent)
	assert.Equal(user.PasswordHash("new-password-hash"), u.PasswordHash.Value)
}

func (suite *testSuite) TestSetPasswordNotFound() {
	err := suite.repo.SetPassword(context.Background(), user.ID(111222333), user.PasswordHash("new-password-hash"))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSetLastLoginAt() {
	created := suite.createUser(EMAIL)
	loginAt := NOW.Add(time.Hour)

	err := suite.repo.SetLastLoginAt(context.Background(), created.ID, loginAt)

	assert := suite.Require()
	assert.Nil(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(u.LastLoginAt.IsPresent)
	assert.True(loginAt.Equal(u.LastLoginAt.Value))
}

func (suite *testSuite) createUser(email string) user.User {
	suite.T().Helper()
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(email),
		PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}
