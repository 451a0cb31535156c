package repositories

import (
	"context"
	"testing"
	"time"

	"dojohub/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type WebhookEventRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    WebhookEventRepository
	context context.Context
}

func (suite *WebhookEventRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewWebhookEventRepo(mock)
	suite.context = context.Background()
}

func (suite *WebhookEventRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestWebhookEventRepoTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookEventRepoTestSuite))
}

func (suite *WebhookEventRepoTestSuite) TestExists_True() {
	suite.mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM webhook_events WHERE id = \$1\)`).
		WithArgs("evt_1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.Exists(suite.context, "evt_1")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *WebhookEventRepoTestSuite) TestExists_False() {
	suite.mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM webhook_events WHERE id = \$1\)`).
		WithArgs("evt_unseen").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := suite.repo.Exists(suite.context, "evt_unseen")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

func (suite *WebhookEventRepoTestSuite) TestCreate_Success() {
	event := &models.WebhookEvent{
		ID:          "evt_1",
		Type:        "invoice.paid",
		ProcessedAt: time.Now(),
	}

	suite.mock.ExpectExec(`(?s)INSERT INTO webhook_events \(id, type, processed_at\).*VALUES \(\$1, \$2, \$3\)`).
		WithArgs(event.ID, event.Type, event.ProcessedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, event)
	assert.NoError(suite.T(), err)
}
