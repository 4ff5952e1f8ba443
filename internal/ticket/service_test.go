package ticket

import (
	"context"
	"strings"
	"testing"

	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/mocks"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func owner() *models.User {
	return &models.User{ID: 1, Username: "artist", Email: "artist@example.com"}
}

func admin() *models.User {
	return &models.User{ID: 2, Username: "support", IsSuperuser: true}
}

func TestCreateTicket_AssignsNumber(t *testing.T) {
	repo := &mocks.TicketRepoMock{}
	notifier := &mocks.NotifierMock{}

	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Ticket).ID = 17
	}).Return(nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("AddReply", mock.Anything, mock.MatchedBy(func(r *models.TicketReply) bool {
		return r.TicketID == 17 && r.Body == "My render is stuck."
	})).Return(nil)

	svc := NewTicketService(repo, notifier)
	ticket, err := svc.CreateTicket(context.Background(), owner(), &dto.TicketCreateRequest{
		Department: "technical",
		Subject:    "Stuck render",
		Body:       "My render is stuck.",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ticket.Number, "17"))
	assert.Len(t, ticket.Number, 7) // five letters plus the id
	assert.Equal(t, models.TicketOpen, ticket.Status)

	events := notifier.Named("on_ticket_created")
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Slack)
	assert.True(t, events[0].Slack.Ticket)
}

func TestReply_AdminEmailsOwner(t *testing.T) {
	repo := &mocks.TicketRepoMock{}
	notifier := &mocks.NotifierMock{}

	ticketRow := &models.Ticket{
		ID: 17, UserID: 1, User: *owner(),
		Number: "abcde17", Subject: "Stuck render", Status: models.TicketWaitingAdmin,
	}
	repo.On("GetByNumber", mock.Anything, "abcde17").Return(ticketRow, nil)
	repo.On("AddReply", mock.Anything, mock.Anything).Return(nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(tk *models.Ticket) bool {
		return tk.Status == models.TicketWaitingCustomer
	})).Return(nil)

	svc := NewTicketService(repo, notifier)
	_, err := svc.Reply(context.Background(), admin(), "abcde17", "Requeued your job.")

	require.NoError(t, err)

	events := notifier.Named("on_ticket_reply")
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Email)
	assert.Equal(t, "artist@example.com", events[0].Email.To)
}

func TestReply_OwnerDoesNotEmailSelf(t *testing.T) {
	repo := &mocks.TicketRepoMock{}
	notifier := &mocks.NotifierMock{}

	ticketRow := &models.Ticket{
		ID: 17, UserID: 1, User: *owner(),
		Number: "abcde17", Subject: "Stuck render", Status: models.TicketWaitingCustomer,
	}
	repo.On("GetByNumber", mock.Anything, "abcde17").Return(ticketRow, nil)
	repo.On("AddReply", mock.Anything, mock.Anything).Return(nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(tk *models.Ticket) bool {
		return tk.Status == models.TicketWaitingAdmin
	})).Return(nil)

	svc := NewTicketService(repo, notifier)
	_, err := svc.Reply(context.Background(), owner(), "abcde17", "Still stuck.")

	require.NoError(t, err)

	events := notifier.Named("on_ticket_reply")
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Email)
}

func TestReply_StrangerIsRefused(t *testing.T) {
	repo := &mocks.TicketRepoMock{}
	notifier := &mocks.NotifierMock{}

	repo.On("GetByNumber", mock.Anything, "abcde17").Return(&models.Ticket{
		ID: 17, UserID: 1, Number: "abcde17",
	}, nil)

	svc := NewTicketService(repo, notifier)
	_, err := svc.Reply(context.Background(), &models.User{ID: 5, Username: "stranger"}, "abcde17", "hi")

	require.Error(t, err)
	repo.AssertNotCalled(t, "AddReply", mock.Anything, mock.Anything)
}

func TestSetStatus_AdminOnly(t *testing.T) {
	repo := &mocks.TicketRepoMock{}
	notifier := &mocks.NotifierMock{}

	svc := NewTicketService(repo, notifier)
	err := svc.SetStatus(context.Background(), owner(), "abcde17", models.TicketClosed)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
