package workforce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/logistics-erp/hrm/internal/domain/org"
	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
	"go.uber.org/zap"
)

// ObjectStorageService is implemented by the infrastructure layer (S3 or
// the in-memory stub) and stores employee document files.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// AllowedDocumentContentTypes is the upload whitelist for employee documents
var AllowedDocumentContentTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 15 * time.Minute
	employeeNoFormat  = "EMP-%06d"
)

// EmployeeService handles the personnel file lifecycle. Every mutation
// appends exactly one audit trail record per logical change.
type EmployeeService struct {
	employeeRepo workforce.EmployeeRepository
	historyRepo  workforce.HistoryRepository
	branchRepo   org.BranchRepository
	divisionRepo org.DivisionRepository
	positionRepo org.PositionRepository
	storage      ObjectStorageService
	logger       *zap.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo workforce.EmployeeRepository,
	historyRepo workforce.HistoryRepository,
	branchRepo org.BranchRepository,
	divisionRepo org.DivisionRepository,
	positionRepo org.PositionRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		historyRepo:  historyRepo,
		branchRepo:   branchRepo,
		divisionRepo: divisionRepo,
		positionRepo: positionRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create opens a new personnel file. The employee number is taken from an
// atomic sequence and is immutable afterwards.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByNationalID(ctx, req.NationalID)
	if err != nil {
		s.logger.Error("Failed to check national ID", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check national ID")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An employee with this national ID already exists")
	}

	position, err := s.validateAssignment(ctx, req.BranchID, req.DivisionID, req.PositionID)
	if err != nil {
		return nil, err
	}

	salary, err := toSalary(req.Salary, req.Currency)
	if err != nil {
		return nil, err
	}

	seq, err := s.employeeRepo.NextEmployeeSequence(ctx)
	if err != nil {
		s.logger.Error("Failed to advance employee sequence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate employee number")
	}

	gender := workforce.Gender(req.Gender)
	if gender == "" {
		gender = workforce.GenderUnspecified
	}

	employee, err := workforce.NewEmployee(workforce.NewEmployeeInput{
		EmployeeNo:     fmt.Sprintf(employeeNoFormat, seq),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		NationalID:     req.NationalID,
		DateOfBirth:    req.DateOfBirth,
		Gender:         gender,
		BranchID:       req.BranchID,
		DivisionID:     req.DivisionID,
		PositionID:     req.PositionID,
		HireDate:       req.HireDate,
		EmploymentType: workforce.EmploymentType(req.EmploymentType),
		Salary:         salary,
	})
	if err != nil {
		return nil, err
	}

	if len(req.Addresses) > 0 || len(req.Contacts) > 0 {
		if err := employee.UpdatePersonal(req.FirstName, req.LastName, req.DateOfBirth, gender,
			toAddresses(req.Addresses), toContacts(req.Contacts)); err != nil {
			return nil, err
		}
		// Folding the creation below writes the single history entry for
		// this logical operation.
		employee.ClearDomainEvents()
		employee.AddDomainEvent(workforce.NewEmployeeCreatedEvent(employee))
	}

	if err := position.FillSeat(); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to create employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create employee")
	}

	if err := s.positionRepo.Save(ctx, position); err != nil {
		s.logger.Error("Failed to update position headcount", zap.Error(err))
	}

	s.appendHistory(ctx, employee, req.ActorID, "")

	s.logger.Info("Employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("employee_no", employee.EmployeeNo))

	return ToEmployeeResponse(employee), nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// GetByEmployeeNo retrieves an employee by employee number
func (s *EmployeeService) GetByEmployeeNo(ctx context.Context, employeeNo string) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByEmployeeNo(ctx, employeeNo)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Employee not found")
		}
		return nil, err
	}
	return ToEmployeeResponse(employee), nil
}

// List retrieves a paginated list of employees
func (s *EmployeeService) List(ctx context.Context, req ListEmployeesFilter) (*shared.Paginated[EmployeeResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.BranchID != nil {
		filter.Filters["branch_id"] = *req.BranchID
	}
	if req.DivisionID != nil {
		filter.Filters["division_id"] = *req.DivisionID
	}
	if req.PositionID != nil {
		filter.Filters["position_id"] = *req.PositionID
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.EmploymentType != "" {
		filter.Filters["employment_type"] = req.EmploymentType
	}

	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list employees", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list employees")
	}

	total, err := s.employeeRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count employees", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count employees")
	}

	items := make([]EmployeeResponse, len(employees))
	for i := range employees {
		items[i] = *ToEmployeeResponse(&employees[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update replaces the personal section of the file
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := employee.UpdatePersonal(req.FirstName, req.LastName, req.DateOfBirth,
		workforce.Gender(req.Gender), toAddresses(req.Addresses), toContacts(req.Contacts)); err != nil {
		return nil, err
	}

	return s.saveAndRecord(ctx, employee, req.ActorID, req.Note)
}

// UpdateSalary adjusts the salary on file
func (s *EmployeeService) UpdateSalary(ctx context.Context, id uuid.UUID, req UpdateSalaryRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	salary, err := toSalary(req.Salary, req.Currency)
	if err != nil {
		return nil, err
	}
	if err := employee.UpdateSalary(salary); err != nil {
		return nil, err
	}

	return s.saveAndRecord(ctx, employee, req.ActorID, req.Note)
}

// AddDocument attaches document metadata and returns a presigned upload URL
func (s *EmployeeService) AddDocument(ctx context.Context, id uuid.UUID, req AddDocumentRequest) (*AddDocumentResponse, error) {
	if !AllowedDocumentContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_INPUT", "Content type is not allowed for employee documents")
	}

	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := workforce.Document{
		ID:          uuid.New(),
		Type:        workforce.DocumentType(req.Type),
		Title:       req.Title,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		UploadedBy:  req.ActorID,
	}
	doc.ObjectKey = path.Join("employees", employee.ID.String(), "documents", doc.ID.String(), req.FileName)

	if err := employee.AddDocument(doc); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, doc.ObjectKey, req.ContentType, uploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate upload URL", zap.Error(err))
		return nil, shared.NewDomainError("UNAVAILABLE", "Document storage is unavailable")
	}

	if _, err := s.saveAndRecord(ctx, employee, req.ActorID, ""); err != nil {
		return nil, err
	}

	return &AddDocumentResponse{
		Document:  toDocumentResponse(doc),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// RemoveDocument detaches a document and deletes the stored object
func (s *EmployeeService) RemoveDocument(ctx context.Context, id, documentID uuid.UUID, actorID uuid.UUID) error {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return err
	}

	doc, err := employee.RemoveDocument(documentID)
	if err != nil {
		return err
	}

	if _, err := s.saveAndRecord(ctx, employee, actorID, ""); err != nil {
		return err
	}

	// Stored object cleanup is best effort; the metadata is already gone.
	if err := s.storage.DeleteObject(ctx, doc.ObjectKey); err != nil {
		s.logger.Warn("Failed to delete stored document object",
			zap.String("object_key", doc.ObjectKey), zap.Error(err))
	}

	return nil
}

// DocumentDownloadURL returns a presigned download link for a document
func (s *EmployeeService) DocumentDownloadURL(ctx context.Context, id, documentID uuid.UUID) (*DocumentURLResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, ok := employee.FindDocument(documentID)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Document not found on employee file")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.ObjectKey, downloadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate download URL", zap.Error(err))
		return nil, shared.NewDomainError("UNAVAILABLE", "Document storage is unavailable")
	}

	return &DocumentURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// AddSkill records a rated competency on the file
func (s *EmployeeService) AddSkill(ctx context.Context, id uuid.UUID, req AddSkillRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := employee.AddSkill(workforce.Skill{
		Name:        req.Name,
		Level:       req.Level,
		CertifiedAt: req.CertifiedAt,
	}); err != nil {
		return nil, err
	}

	return s.saveAndRecord(ctx, employee, req.ActorID, "")
}

// AddTraining records a completed training on the file
func (s *EmployeeService) AddTraining(ctx context.Context, id uuid.UUID, req AddTrainingRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := employee.AddTraining(workforce.Training{
		Name:        req.Name,
		Provider:    req.Provider,
		CompletedAt: req.CompletedAt,
		ExpiresAt:   req.ExpiresAt,
	}); err != nil {
		return nil, err
	}

	return s.saveAndRecord(ctx, employee, req.ActorID, "")
}

// AddContract records an employment contract period on the file
func (s *EmployeeService) AddContract(ctx context.Context, id uuid.UUID, req AddContractRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := employee.AddContract(workforce.ContractTerm{
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		SignedAt:  req.SignedAt,
	}); err != nil {
		return nil, err
	}

	return s.saveAndRecord(ctx, employee, req.ActorID, "")
}

// ChangeStatus transitions the employment status. Terminating releases the
// position seat.
func (s *EmployeeService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeEmployeeStatusRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := workforce.EmployeeStatus(req.Status)
	if err := employee.ChangeStatus(newStatus, req.Reason); err != nil {
		return nil, err
	}

	resp, err := s.saveAndRecord(ctx, employee, req.ActorID, req.Reason)
	if err != nil {
		return nil, err
	}

	if newStatus == workforce.EmployeeStatusTerminated {
		if position, err := s.positionRepo.FindByID(ctx, employee.PositionID); err == nil {
			position.ReleaseSeat()
			if err := s.positionRepo.Save(ctx, position); err != nil {
				s.logger.Error("Failed to release position seat", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// Transfer moves the employee to new branch/division/position assignments
func (s *EmployeeService) Transfer(ctx context.Context, id uuid.UUID, req TransferEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	branchID := employee.BranchID
	if req.BranchID != nil {
		branchID = *req.BranchID
	}
	divisionID := employee.DivisionID
	if req.DivisionID != nil {
		divisionID = *req.DivisionID
	}
	positionID := employee.PositionID
	if req.PositionID != nil {
		positionID = *req.PositionID
	}

	oldPositionID := employee.PositionID
	positionChanged := positionID != oldPositionID

	var newPosition *org.Position
	if positionChanged {
		newPosition, err = s.validateAssignment(ctx, branchID, divisionID, positionID)
		if err != nil {
			return nil, err
		}
		if err := newPosition.FillSeat(); err != nil {
			return nil, err
		}
	} else if _, err := s.validateAssignment(ctx, branchID, divisionID, positionID); err != nil {
		return nil, err
	}

	if err := employee.Transfer(branchID, divisionID, positionID); err != nil {
		return nil, err
	}

	resp, err := s.saveAndRecord(ctx, employee, req.ActorID, req.Note)
	if err != nil {
		return nil, err
	}

	if positionChanged {
		if err := s.positionRepo.Save(ctx, newPosition); err != nil {
			s.logger.Error("Failed to update new position headcount", zap.Error(err))
		}
		if oldPosition, err := s.positionRepo.FindByID(ctx, oldPositionID); err == nil {
			oldPosition.ReleaseSeat()
			if err := s.positionRepo.Save(ctx, oldPosition); err != nil {
				s.logger.Error("Failed to release old position seat", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// GetHistory lists the audit trail of an employee, newest first
func (s *EmployeeService) GetHistory(ctx context.Context, id uuid.UUID, req ListHistoryFilter) (*shared.Paginated[HistoryResponse], error) {
	if _, err := s.findEmployee(ctx, id); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Action != "" {
		filter.Filters["action"] = req.Action
	}

	records, err := s.historyRepo.FindByEmployee(ctx, id, filter)
	if err != nil {
		s.logger.Error("Failed to list employee history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list employee history")
	}

	total, err := s.historyRepo.CountByEmployee(ctx, id, filter)
	if err != nil {
		s.logger.Error("Failed to count employee history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count employee history")
	}

	items := make([]HistoryResponse, len(records))
	for i := range records {
		items[i] = *ToHistoryResponse(&records[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Stats aggregates headcount by status and branch
func (s *EmployeeService) Stats(ctx context.Context) (*StatsResponse, error) {
	byStatus, err := s.employeeRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate headcount by status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to aggregate headcount")
	}

	byBranch, err := s.employeeRepo.CountByBranch(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate headcount by branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to aggregate headcount")
	}

	resp := &StatsResponse{
		ByStatus: make(map[string]int64, len(byStatus)),
		ByBranch: make(map[string]int64, len(byBranch)),
	}
	for _, c := range byStatus {
		resp.ByStatus[string(c.Status)] = c.Count
		resp.Total += c.Count
	}
	for _, c := range byBranch {
		resp.ByBranch[c.BranchID.String()] = c.Count
	}
	return resp, nil
}

// Delete removes a terminated employee file
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return err
	}

	if !employee.IsTerminated() {
		return shared.NewDomainError("INVALID_STATE", "Only terminated employees can be deleted")
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete employee", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete employee")
	}

	s.logger.Info("Employee deleted",
		zap.String("employee_id", id.String()),
		zap.String("employee_no", employee.EmployeeNo))

	return nil
}

func (s *EmployeeService) findEmployee(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Employee not found")
		}
		s.logger.Error("Failed to load employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load employee")
	}
	return employee, nil
}

func (s *EmployeeService) validateAssignment(ctx context.Context, branchID, divisionID, positionID uuid.UUID) (*org.Position, error) {
	if _, err := s.branchRepo.FindByID(ctx, branchID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_BRANCH", "Branch not found")
		}
		return nil, err
	}
	if _, err := s.divisionRepo.FindByID(ctx, divisionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_DIVISION", "Division not found")
		}
		return nil, err
	}
	position, err := s.positionRepo.FindByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_POSITION", "Position not found")
		}
		return nil, err
	}
	return position, nil
}

func (s *EmployeeService) saveAndRecord(ctx context.Context, employee *workforce.Employee, actorID uuid.UUID, note string) (*EmployeeResponse, error) {
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		s.logger.Error("Failed to save employee", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save employee")
	}

	s.appendHistory(ctx, employee, actorID, note)

	return ToEmployeeResponse(employee), nil
}

// appendHistory folds pending domain events into audit trail records.
// History write failures are logged, not surfaced: the file mutation has
// already been persisted.
func (s *EmployeeService) appendHistory(ctx context.Context, employee *workforce.Employee, actorID uuid.UUID, note string) {
	events := employee.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	defer employee.ClearDomainEvents()

	records := make([]*workforce.HistoryRecord, 0, len(events))
	for _, event := range events {
		record, err := historyFromEvent(employee.ID, event, actorID, note)
		if err != nil {
			s.logger.Warn("Skipping unmappable employee event",
				zap.String("event_type", event.EventType()), zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return
	}

	if err := s.historyRepo.Append(ctx, records...); err != nil {
		s.logger.Error("Failed to append employee history",
			zap.String("employee_id", employee.ID.String()), zap.Error(err))
	}
}

type assignmentSnapshot struct {
	BranchID   uuid.UUID `json:"branch_id"`
	DivisionID uuid.UUID `json:"division_id"`
	PositionID uuid.UUID `json:"position_id"`
}

func historyFromEvent(employeeID uuid.UUID, event shared.DomainEvent, actorID uuid.UUID, note string) (*workforce.HistoryRecord, error) {
	switch e := event.(type) {
	case *workforce.EmployeeCreatedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionCreated,
			"", "", e.EmployeeNo, actorID, note)
	case *workforce.EmployeeUpdatedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionUpdated,
			e.Field, e.OldValue, e.NewValue, actorID, note)
	case *workforce.EmployeeStatusChangedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionStatusChanged,
			"status", string(e.OldStatus), string(e.NewStatus), actorID, note)
	case *workforce.EmployeeDocumentAddedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionDocumentAdded,
			"documents", "", e.Title, actorID, note)
	case *workforce.EmployeeDocumentRemovedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionDocumentRemoved,
			"documents", e.Title, "", actorID, note)
	case *workforce.EmployeeSkillAddedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionSkillAdded,
			"skills", "", fmt.Sprintf("%s (level %d)", e.SkillName, e.Level), actorID, note)
	case *workforce.EmployeeTrainingAddedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionTrainingAdded,
			"trainings", "", e.TrainingName, actorID, note)
	case *workforce.EmployeeContractAddedEvent:
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionContractAdded,
			"contracts", "", e.ContractType, actorID, note)
	case *workforce.EmployeeTransferredEvent:
		oldRefs, _ := json.Marshal(assignmentSnapshot{
			BranchID: e.OldBranchID, DivisionID: e.OldDivisionID, PositionID: e.OldPositionID,
		})
		newRefs, _ := json.Marshal(assignmentSnapshot{
			BranchID: e.NewBranchID, DivisionID: e.NewDivisionID, PositionID: e.NewPositionID,
		})
		return workforce.NewHistoryRecord(employeeID, workforce.HistoryActionTransferred,
			"assignment", string(oldRefs), string(newRefs), actorID, note)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown employee event type")
	}
}
