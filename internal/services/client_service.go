package services

import (
	"strings"

	"clientboard/internal/models"
	"clientboard/internal/repository"
	"clientboard/internal/workflow"
)

type ClientService interface {
	CreateClient(userID uint, in ClientInput) (*models.Client, error)
	GetClient(userID, clientID uint) (*models.Client, error)
	ListClients(userID uint) ([]models.Client, error)
	UpdateClient(userID, clientID uint, in ClientUpdate) (*models.Client, error)
	DeleteClient(userID, clientID uint) error
}

// ClientInput carries the fields an operator sets when creating a client.
type ClientInput struct {
	Name    string
	Company string
	Email   string
}

// ClientUpdate carries partial edits; nil fields are left untouched.
type ClientUpdate struct {
	Name    *string
	Company *string
	Email   *string
}

type clientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

func (s *clientService) CreateClient(userID uint, in ClientInput) (*models.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, workflow.Validation("client name is required")
	}

	client := &models.Client{
		UserID:  userID,
		Name:    name,
		Company: in.Company,
		Email:   in.Email,
	}
	if err := s.clients.Create(client); err != nil {
		return nil, workflow.Upstream("failed to create client", err)
	}
	return client, nil
}

func (s *clientService) GetClient(userID, clientID uint) (*models.Client, error) {
	client, err := s.clients.GetByIDForUser(clientID, userID)
	if err != nil {
		return nil, notFoundOr(err, "client not found", "failed to load client")
	}
	return client, nil
}

func (s *clientService) ListClients(userID uint) ([]models.Client, error) {
	clients, err := s.clients.GetByUserID(userID)
	if err != nil {
		return nil, workflow.Upstream("failed to list clients", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(userID, clientID uint, in ClientUpdate) (*models.Client, error) {
	client, err := s.clients.GetByIDForUser(clientID, userID)
	if err != nil {
		return nil, notFoundOr(err, "client not found", "failed to load client")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, workflow.Validation("client name cannot be empty")
		}
		client.Name = name
	}
	if in.Company != nil {
		client.Company = *in.Company
	}
	if in.Email != nil {
		client.Email = *in.Email
	}

	if err := s.clients.Update(client); err != nil {
		return nil, workflow.Upstream("failed to update client", err)
	}
	return client, nil
}

func (s *clientService) DeleteClient(userID, clientID uint) error {
	client, err := s.clients.GetByIDForUser(clientID, userID)
	if err != nil {
		return notFoundOr(err, "client not found", "failed to load client")
	}
	if err := s.clients.Delete(client.ID); err != nil {
		return workflow.Upstream("failed to delete client", err)
	}
	return nil
}
