package ticket

import (
	"context"
	"fmt"
	"net/http"

	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
)

type TicketService struct {
	repo     TicketRepoInterface
	notifier notify.Notifier
}

func NewTicketService(repo TicketRepoInterface, notifier notify.Notifier) *TicketService {
	return &TicketService{repo: repo, notifier: notifier}
}

var _ TicketServiceInterface = (*TicketService)(nil)

// CreateTicket opens a ticket with its first reply as the body. The
// public number is a random letter prefix plus the row id, assigned
// right after the insert.
func (s *TicketService) CreateTicket(ctx context.Context, user *models.User, req *dto.TicketCreateRequest) (*models.Ticket, error) {
	ticket := &models.Ticket{
		UserID:     user.ID,
		User:       *user,
		Department: models.TicketDepartment(req.Department),
		Status:     models.TicketOpen,
		Subject:    req.Subject,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create ticket")
	}

	ticket.Number = fmt.Sprintf("%s%d", common.RandomCode(5), ticket.ID)
	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create ticket")
	}

	reply := &models.TicketReply{
		TicketID: ticket.ID,
		AuthorID: user.ID,
		Author:   *user,
		Body:     req.Body,
	}
	if err := s.repo.AddReply(ctx, reply); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create ticket")
	}
	ticket.Replies = append(ticket.Replies, *reply)

	s.notifier.Dispatch(ticketSlackEvent("on_ticket_created", ticket, user, req.Body))
	return ticket, nil
}

// Reply appends to a ticket thread. Admin replies email the ticket
// owner and flip the thread to waiting on the customer; customer
// replies flip it back.
func (s *TicketService) Reply(ctx context.Context, author *models.User, number, body string) (*models.Ticket, error) {
	ticket, err := s.loadFor(ctx, author, number)
	if err != nil {
		return nil, err
	}

	reply := &models.TicketReply{
		TicketID: ticket.ID,
		AuthorID: author.ID,
		Author:   *author,
		Body:     body,
	}
	if err := s.repo.AddReply(ctx, reply); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to add reply")
	}
	ticket.Replies = append(ticket.Replies, *reply)

	fromAdmin := author.IsSuperuser && author.ID != ticket.UserID
	if fromAdmin {
		ticket.Status = models.TicketWaitingCustomer
	} else {
		ticket.Status = models.TicketWaitingAdmin
	}
	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to update ticket")
	}

	ev := ticketSlackEvent("on_ticket_reply", ticket, author, body)
	if fromAdmin && ticket.User.Email != "" {
		ev.Email = &notify.EmailMessage{
			To:         ticket.User.Email,
			Subject:    fmt.Sprintf("Ticket %s has a new reply", ticket.Number),
			Body:       fmt.Sprintf("Your ticket %q has a new reply from support.", ticket.Subject),
			ActionText: "View Ticket",
			ActionURL:  fmt.Sprintf("/tickets/%s", ticket.Number),
		}
	}
	s.notifier.Dispatch(ev)

	return ticket, nil
}

func (s *TicketService) GetTicket(ctx context.Context, user *models.User, number string) (*models.Ticket, error) {
	return s.loadFor(ctx, user, number)
}

func (s *TicketService) ListTickets(ctx context.Context, user *models.User) ([]dto.TicketResponse, error) {
	tickets, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list tickets")
	}

	out := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = ToTicketResponse(&tickets[i], false)
	}
	return out, nil
}

// SetStatus is the admin surface for closing and resolving tickets.
func (s *TicketService) SetStatus(ctx context.Context, admin *models.User, number string, status models.TicketStatus) error {
	if !admin.IsSuperuser {
		return common.Errf(http.StatusForbidden, "only admins can change ticket status")
	}

	ticket, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return common.Errf(http.StatusNotFound, "ticket not found")
	}

	ticket.Status = status
	if err := s.repo.Save(ctx, ticket); err != nil {
		return common.Errf(http.StatusInternalServerError, "failed to update ticket")
	}

	s.notifier.Dispatch(ticketSlackEvent("on_ticket_status_changed", ticket, admin, string(status)))
	return nil
}

func (s *TicketService) loadFor(ctx context.Context, user *models.User, number string) (*models.Ticket, error) {
	ticket, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, common.Errf(http.StatusNotFound, "ticket not found")
	}
	if ticket.UserID != user.ID && !user.IsSuperuser {
		return nil, common.Errf(http.StatusNotFound, "ticket not found")
	}
	return ticket, nil
}

// ticketSlackEvent posts to the dedicated ticket channel.
func ticketSlackEvent(event string, t *models.Ticket, actor *models.User, body string) notify.Event {
	return notify.Event{
		Name: event,
		Slack: &notify.SlackMessage{
			Event:  event,
			Ticket: true,
			Data: map[string]any{
				"number":     t.Number,
				"subject":    t.Subject,
				"department": string(t.Department),
				"status":     string(t.Status),
				"author":     actor.Username,
				"body":       body,
			},
		},
	}
}

func ToTicketResponse(t *models.Ticket, includeReplies bool) dto.TicketResponse {
	resp := dto.TicketResponse{
		Number:     t.Number,
		User:       t.User.Username,
		Department: string(t.Department),
		Status:     string(t.Status),
		Subject:    t.Subject,
		CreatedAt:  t.CreatedAt,
	}
	if includeReplies {
		resp.Replies = make([]dto.TicketReplyResponse, len(t.Replies))
		for i := range t.Replies {
			resp.Replies[i] = dto.TicketReplyResponse{
				ID:        t.Replies[i].ID,
				Author:    t.Replies[i].Author.Username,
				Body:      t.Replies[i].Body,
				CreatedAt: t.Replies[i].CreatedAt,
			}
		}
	}
	return resp
}
