package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdir/directory-api/internal/core/domain"
)

const departmentCollection = "departments"

// departmentFieldKeys maps the service-level update field names to their bson
// keys. Keys missing from this map are dropped; the service has already
// rejected anything outside its whitelist.
var departmentFieldKeys = map[string]string{
	"departmentName": "department_name",
	"categoryName":   "category_name",
	"location":       "location",
	"salary":         "salary",
}

// DepartmentRepository persists departments in MongoDB.
type DepartmentRepository struct {
	coll *mongo.Collection
}

func NewDepartmentRepository(db *mongo.Database) *DepartmentRepository {
	return &DepartmentRepository{coll: db.Collection(departmentCollection)}
}

type mongoDepartment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	DepartmentName string             `bson:"department_name"`
	CategoryName   string             `bson:"category_name"`
	Location       string             `bson:"location"`
	Salary         float64            `bson:"salary"`
	Employees      []string           `bson:"employees"`
}

func (r *DepartmentRepository) Create(ctx context.Context, dept *domain.Department) (*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDepartment{
		DepartmentName: dept.DepartmentName,
		CategoryName:   dept.CategoryName,
		Location:       dept.Location,
		Salary:         dept.Salary,
		Employees:      dept.Employees,
	}
	if doc.Employees == nil {
		doc.Employees = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert department: %w", err)
	}

	created := *dept
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*domain.Department, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDepartmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDepartment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DepartmentRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Department, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDepartmentNotFound
	}

	set := bson.M{}
	for field, value := range fields {
		if key, ok := departmentFieldKeys[field]; ok {
			set[key] = value
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDepartment
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&md)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("update department: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDepartmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func (r *DepartmentRepository) List(ctx context.Context, skip, limit int) ([]*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return decodeDepartments(ctx, cur)
}

func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return total, nil
}

func (r *DepartmentRepository) SetEmployees(ctx context.Context, id string, employees []string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDepartmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"employees": employees}})
	if err != nil {
		return fmt.Errorf("set department roster: %w", err)
	}
	return nil
}

// PullEmployees removes the ids from every roster except the department being
// assigned to, so a reassigned employee leaves no stale entry behind.
func (r *DepartmentRepository) PullEmployees(ctx context.Context, employeeIDs []string, exceptID string) error {
	filter := bson.M{"employees": bson.M{"$in": employeeIDs}}
	if oid, err := primitive.ObjectIDFromHex(exceptID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx, filter,
		bson.M{"$pull": bson.M{"employees": bson.M{"$in": employeeIDs}}},
	)
	if err != nil {
		return fmt.Errorf("pull employees from rosters: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"category_name": category},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find departments by category: %w", err)
	}
	return decodeDepartments(ctx, cur)
}

func (r *DepartmentRepository) FindByCategoryAndLocationPrefix(ctx context.Context, category, prefix string) ([]*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"category_name": category,
		"location": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(prefix),
			Options: "i",
		},
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find departments by category and location: %w", err)
	}
	return decodeDepartments(ctx, cur)
}

// EnsureIndexes creates the indexes backing the directory queries.
func (r *DepartmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_name", Value: 1}}},
		{Keys: bson.D{{Key: "employees", Value: 1}}},
	})
	return err
}

func decodeDepartments(ctx context.Context, cur *mongo.Cursor) ([]*domain.Department, error) {
	defer cur.Close(ctx)

	depts := make([]*domain.Department, 0)
	for cur.Next(ctx) {
		var md mongoDepartment
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode department: %w", err)
		}
		depts = append(depts, md.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	return depts, nil
}

func (md *mongoDepartment) toDomain() *domain.Department {
	employees := md.Employees
	if employees == nil {
		employees = []string{}
	}
	return &domain.Department{
		ID:             md.ID.Hex(),
		DepartmentName: md.DepartmentName,
		CategoryName:   md.CategoryName,
		Location:       md.Location,
		Salary:         md.Salary,
		Employees:      employees,
	}
}
