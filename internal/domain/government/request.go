package government

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
	"remotcyberhelp/internal/shared/query"
)

const (
	ReferencePrefix = "GSR"
	ReferenceBucket = "govreq"
)

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestProcessing RequestStatus = "processing"
	RequestCompleted  RequestStatus = "completed"
	RequestRejected   RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestProcessing, RequestCompleted, RequestRejected:
		return true
	}
	return false
}

// Request is a customer's order for a catalogue service.
type Request struct {
	id          string
	reference   string
	serviceCode string
	serviceName string
	fullName    string
	email       string
	phone       string
	idNumber    string
	details     string
	status      RequestStatus
	adminNotes  string
	createdAt   time.Time
	updatedAt   time.Time
}

type NewRequestParams struct {
	FullName string
	Email    string
	Phone    string
	IDNumber string
	Details  string
}

func NewRequest(svc *Service, p NewRequestParams, now time.Time) (*Request, error) {
	if svc == nil || !svc.Active {
		return nil, errors.NewValidationError("service is not available")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return nil, errors.NewValidationError("fullName is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, errors.NewValidationError("email is required")
	}
	now = now.UTC()
	return &Request{
		id:          id.New(),
		serviceCode: svc.Code,
		serviceName: svc.Name,
		fullName:    strings.TrimSpace(p.FullName),
		email:       strings.ToLower(strings.TrimSpace(p.Email)),
		phone:       strings.TrimSpace(p.Phone),
		idNumber:    strings.TrimSpace(p.IDNumber),
		details:     strings.TrimSpace(p.Details),
		status:      RequestPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type RequestState struct {
	ID          string
	Reference   string
	ServiceCode string
	ServiceName string
	FullName    string
	Email       string
	Phone       string
	IDNumber    string
	Details     string
	Status      string
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructRequest(s RequestState) *Request {
	return &Request{
		id:          s.ID,
		reference:   s.Reference,
		serviceCode: s.ServiceCode,
		serviceName: s.ServiceName,
		fullName:    s.FullName,
		email:       s.Email,
		phone:       s.Phone,
		idNumber:    s.IDNumber,
		details:     s.Details,
		status:      RequestStatus(s.Status),
		adminNotes:  s.AdminNotes,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (r *Request) State() RequestState {
	return RequestState{
		ID:          r.id,
		Reference:   r.reference,
		ServiceCode: r.serviceCode,
		ServiceName: r.serviceName,
		FullName:    r.fullName,
		Email:       r.email,
		Phone:       r.phone,
		IDNumber:    r.idNumber,
		Details:     r.details,
		Status:      string(r.status),
		AdminNotes:  r.adminNotes,
		CreatedAt:   r.createdAt,
		UpdatedAt:   r.updatedAt,
	}
}

func (r *Request) ID() string {
	return r.id
}

func (r *Request) Reference() string {
	return r.reference
}

func (r *Request) Email() string {
	return r.email
}

func (r *Request) FullName() string {
	return r.fullName
}

func (r *Request) ServiceName() string {
	return r.serviceName
}

func (r *Request) Status() RequestStatus {
	return r.status
}

func (r *Request) SetReference(ref string) error {
	if r.reference != "" {
		return fmt.Errorf("reference is already set")
	}
	if ref == "" {
		return fmt.Errorf("reference cannot be empty")
	}
	r.reference = ref
	return nil
}

func (r *Request) UpdateStatus(s RequestStatus, notes string, now time.Time) error {
	if !s.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", s))
	}
	r.status = s
	if strings.TrimSpace(notes) != "" {
		r.adminNotes = strings.TrimSpace(notes)
	}
	r.updatedAt = now.UTC()
	return nil
}

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	Update(ctx context.Context, r *Request) error
	GetByReference(ctx context.Context, reference string) (*Request, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter RequestFilter) ([]*Request, int64, error)
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)
}

type RequestFilter struct {
	query.BaseFilter
	Status      *RequestStatus
	ServiceCode string
	Search      string
}

// ReferenceChecker adapts a RequestRepository to the allocator's checker.
type ReferenceChecker struct {
	Repo RequestRepository
}

func (c ReferenceChecker) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return c.Repo.ExistsByReference(ctx, number)
}
