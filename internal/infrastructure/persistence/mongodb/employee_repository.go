package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logistics-erp/hrm/internal/domain/shared"
	"github.com/logistics-erp/hrm/internal/domain/workforce"
)

type employeeAddressDoc struct {
	Label      string `bson:"label"`
	Street     string `bson:"street"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
}

type contactDoc struct {
	Type    string `bson:"type"`
	Value   string `bson:"value"`
	Primary bool   `bson:"primary"`
}

type employeeDocumentDoc struct {
	ID          string    `bson:"id"`
	Type        string    `bson:"type"`
	Title       string    `bson:"title"`
	ObjectKey   string    `bson:"object_key"`
	ContentType string    `bson:"content_type"`
	SizeBytes   int64     `bson:"size_bytes"`
	UploadedBy  string    `bson:"uploaded_by"`
	UploadedAt  time.Time `bson:"uploaded_at"`
}

type skillDoc struct {
	Name        string     `bson:"name"`
	Level       int        `bson:"level"`
	CertifiedAt *time.Time `bson:"certified_at,omitempty"`
}

type trainingDoc struct {
	Name        string     `bson:"name"`
	Provider    string     `bson:"provider"`
	CompletedAt time.Time  `bson:"completed_at"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty"`
}

type contractDoc struct {
	Type      string     `bson:"type"`
	StartDate time.Time  `bson:"start_date"`
	EndDate   *time.Time `bson:"end_date,omitempty"`
	SignedAt  time.Time  `bson:"signed_at"`
}

type employeeDoc struct {
	aggregateDoc    `bson:",inline"`
	EmployeeNo      string                `bson:"employee_no"`
	FirstName       string                `bson:"first_name"`
	LastName        string                `bson:"last_name"`
	NationalID      string                `bson:"national_id"`
	DateOfBirth     time.Time             `bson:"date_of_birth"`
	Gender          string                `bson:"gender"`
	Addresses       []employeeAddressDoc  `bson:"addresses,omitempty"`
	Contacts        []contactDoc          `bson:"contacts,omitempty"`
	BranchID        string                `bson:"branch_id"`
	DivisionID      string                `bson:"division_id"`
	PositionID      string                `bson:"position_id"`
	HireDate        time.Time             `bson:"hire_date"`
	EmploymentType  string                `bson:"employment_type"`
	Salary          moneyDoc              `bson:"salary"`
	Documents       []employeeDocumentDoc `bson:"documents,omitempty"`
	Skills          []skillDoc            `bson:"skills,omitempty"`
	Trainings       []trainingDoc         `bson:"trainings,omitempty"`
	Contracts       []contractDoc         `bson:"contracts,omitempty"`
	Status          string                `bson:"status"`
	TerminationDate *time.Time            `bson:"termination_date,omitempty"`
}

func newEmployeeDoc(e *workforce.Employee) employeeDoc {
	addresses := make([]employeeAddressDoc, 0, len(e.Addresses))
	for _, a := range e.Addresses {
		addresses = append(addresses, employeeAddressDoc(a))
	}
	contacts := make([]contactDoc, 0, len(e.Contacts))
	for _, c := range e.Contacts {
		contacts = append(contacts, contactDoc{Type: string(c.Type), Value: c.Value, Primary: c.Primary})
	}
	documents := make([]employeeDocumentDoc, 0, len(e.Documents))
	for _, d := range e.Documents {
		documents = append(documents, employeeDocumentDoc{
			ID:          d.ID.String(),
			Type:        string(d.Type),
			Title:       d.Title,
			ObjectKey:   d.ObjectKey,
			ContentType: d.ContentType,
			SizeBytes:   d.SizeBytes,
			UploadedBy:  d.UploadedBy.String(),
			UploadedAt:  d.UploadedAt,
		})
	}
	skills := make([]skillDoc, 0, len(e.Skills))
	for _, s := range e.Skills {
		skills = append(skills, skillDoc(s))
	}
	trainings := make([]trainingDoc, 0, len(e.Trainings))
	for _, t := range e.Trainings {
		trainings = append(trainings, trainingDoc(t))
	}
	contracts := make([]contractDoc, 0, len(e.Contracts))
	for _, c := range e.Contracts {
		contracts = append(contracts, contractDoc(c))
	}

	return employeeDoc{
		aggregateDoc:    newAggregateDoc(e.ID, e.CreatedAt, e.UpdatedAt, e.Version),
		EmployeeNo:      e.EmployeeNo,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		NationalID:      e.NationalID,
		DateOfBirth:     e.DateOfBirth,
		Gender:          string(e.Gender),
		Addresses:       addresses,
		Contacts:        contacts,
		BranchID:        e.BranchID.String(),
		DivisionID:      e.DivisionID.String(),
		PositionID:      e.PositionID.String(),
		HireDate:        e.HireDate,
		EmploymentType:  string(e.EmploymentType),
		Salary:          moneyDocOf(e.Salary),
		Documents:       documents,
		Skills:          skills,
		Trainings:       trainings,
		Contracts:       contracts,
		Status:          string(e.Status),
		TerminationDate: e.TerminationDate,
	}
}

func (d employeeDoc) toDomain() (workforce.Employee, error) {
	root, err := d.root()
	if err != nil {
		return workforce.Employee{}, err
	}

	addresses := make([]workforce.Address, 0, len(d.Addresses))
	for _, a := range d.Addresses {
		addresses = append(addresses, workforce.Address(a))
	}
	contacts := make([]workforce.Contact, 0, len(d.Contacts))
	for _, c := range d.Contacts {
		contacts = append(contacts, workforce.Contact{Type: workforce.ContactType(c.Type), Value: c.Value, Primary: c.Primary})
	}
	documents := make([]workforce.Document, 0, len(d.Documents))
	for _, doc := range d.Documents {
		documents = append(documents, workforce.Document{
			ID:          parseUUID(doc.ID),
			Type:        workforce.DocumentType(doc.Type),
			Title:       doc.Title,
			ObjectKey:   doc.ObjectKey,
			ContentType: doc.ContentType,
			SizeBytes:   doc.SizeBytes,
			UploadedBy:  parseUUID(doc.UploadedBy),
			UploadedAt:  doc.UploadedAt,
		})
	}
	skills := make([]workforce.Skill, 0, len(d.Skills))
	for _, s := range d.Skills {
		skills = append(skills, workforce.Skill(s))
	}
	trainings := make([]workforce.Training, 0, len(d.Trainings))
	for _, t := range d.Trainings {
		trainings = append(trainings, workforce.Training(t))
	}
	contracts := make([]workforce.ContractTerm, 0, len(d.Contracts))
	for _, c := range d.Contracts {
		contracts = append(contracts, workforce.ContractTerm(c))
	}

	return workforce.Employee{
		BaseAggregateRoot: root,
		EmployeeNo:        d.EmployeeNo,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		NationalID:        d.NationalID,
		DateOfBirth:       d.DateOfBirth,
		Gender:            workforce.Gender(d.Gender),
		Addresses:         addresses,
		Contacts:          contacts,
		BranchID:          parseUUID(d.BranchID),
		DivisionID:        parseUUID(d.DivisionID),
		PositionID:        parseUUID(d.PositionID),
		HireDate:          d.HireDate,
		EmploymentType:    workforce.EmploymentType(d.EmploymentType),
		Salary:            d.Salary.toMoney(),
		Documents:         documents,
		Skills:            skills,
		Trainings:         trainings,
		Contracts:         contracts,
		Status:            workforce.EmployeeStatus(d.Status),
		TerminationDate:   d.TerminationDate,
	}, nil
}

// EmployeeRepository persists employee files in the employees collection.
// Employee numbers draw from a counter document so numbering survives
// restarts and concurrent hires.
type EmployeeRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewEmployeeRepository creates an employee repository
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{
		coll:     db.Collection(collEmployees),
		counters: db.Collection(collCounters),
	}
}

var employeeSortFields = map[string]bool{
	"employee_no": true, "first_name": true, "last_name": true,
	"hire_date": true, "status": true, "created_at": true, "updated_at": true,
}

func employeeQuery(filter shared.Filter) bson.M {
	query := bson.M{}
	if v, ok := filter.Filters["branch_id"].(uuid.UUID); ok {
		query["branch_id"] = v.String()
	}
	if v, ok := filter.Filters["division_id"].(uuid.UUID); ok {
		query["division_id"] = v.String()
	}
	if v, ok := filter.Filters["position_id"].(uuid.UUID); ok {
		query["position_id"] = v.String()
	}
	if v, ok := filter.Filters["status"].(string); ok && v != "" {
		query["status"] = v
	}
	if v, ok := filter.Filters["employment_type"].(string); ok && v != "" {
		query["employment_type"] = v
	}
	if filter.Search != "" {
		query["$and"] = []bson.M{searchClause(filter.Search, "employee_no", "first_name", "last_name", "national_id")}
	}
	return query
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *EmployeeRepository) FindByEmployeeNo(ctx context.Context, employeeNo string) (*workforce.Employee, error) {
	return r.findOne(ctx, bson.M{"employee_no": employeeNo})
}

func (r *EmployeeRepository) findOne(ctx context.Context, query bson.M) (*workforce.Employee, error) {
	var doc employeeDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, mapFindError(err)
	}
	employee, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	cur, err := r.coll.Find(ctx, employeeQuery(filter), findOptions(filter, employeeSortFields))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, employeeDoc.toDomain)
}

func (r *EmployeeRepository) Save(ctx context.Context, employee *workforce.Employee) error {
	return replaceByID(ctx, r.coll, employee.ID.String(), newEmployeeDoc(employee))
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *EmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, employeeQuery(filter))
}

func (r *EmployeeRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"national_id": nationalID}, options.Count().SetLimit(1))
	return count > 0, err
}

// NextEmployeeSequence atomically increments and returns the employee
// number counter
func (r *EmployeeRepository) NextEmployeeSequence(ctx context.Context) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "employee_no"},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *EmployeeRepository) CountByAssignment(ctx context.Context, branchID, divisionID, positionID uuid.UUID) (int64, error) {
	query := bson.M{"status": bson.M{"$ne": string(workforce.EmployeeStatusTerminated)}}
	if branchID != uuid.Nil {
		query["branch_id"] = branchID.String()
	}
	if divisionID != uuid.Nil {
		query["division_id"] = divisionID.String()
	}
	if positionID != uuid.Nil {
		query["position_id"] = positionID.String()
	}
	return r.coll.CountDocuments(ctx, query)
}

func (r *EmployeeRepository) CountByStatus(ctx context.Context) ([]workforce.StatusCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	type row struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	return decodeAll(ctx, cur, func(r row) (workforce.StatusCount, error) {
		return workforce.StatusCount{Status: workforce.EmployeeStatus(r.Status), Count: r.Count}, nil
	})
}

func (r *EmployeeRepository) CountByBranch(ctx context.Context) ([]workforce.BranchCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": string(workforce.EmployeeStatusTerminated)}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$branch_id", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	type row struct {
		BranchID string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	return decodeAll(ctx, cur, func(r row) (workforce.BranchCount, error) {
		return workforce.BranchCount{BranchID: parseUUID(r.BranchID), Count: r.Count}, nil
	})
}
