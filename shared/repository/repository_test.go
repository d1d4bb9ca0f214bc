package repository

import (
	"context"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/stretchr/testify/assert"
)

type roomRow struct {
	ID           string `db:"id"`
	Code         string `db:"code"`
	RoomTypeID   string `db:"room_type_id"`
	RoomTypeName string `db:"room_type_name" table:"room_types" column:"name"`
	Note         string
	model.Metadata
}

func (roomRow) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}

type plainRow struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func newRoomRepository() Repository[roomRow] {
	return NewRepository[roomRow]("room", "rooms", "id", nil, mocks.NewOtel())
}

func TestNewRepository_Columns(t *testing.T) {
	repo := newRoomRepository()

	assert.Equal(t, []string{"id", "code", "room_type_id", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Equal(t, "LEFT JOIN room_types ON room_types.id = rooms.room_type_id", repo.join)
	assert.Equal(t,
		"rooms.id, rooms.code, rooms.room_type_id, room_types.name AS room_type_name, rooms.created_at, rooms.modified_at, rooms.created_by, rooms.modified_by",
		repo.selectList())
}

func TestNewRepository_WithoutJoin(t *testing.T) {
	repo := NewRepository[plainRow]("plain", "plains", "id", nil, mocks.NewOtel())

	assert.Empty(t, repo.join)
	assert.Equal(t, "plains.id, plains.created_at", repo.selectList())
}

func TestRepository_SelectListSubset(t *testing.T) {
	repo := newRoomRepository()

	assert.Equal(t, "rooms.id, room_types.name AS room_type_name", repo.selectList("id", "name"))
}

func TestRepository_InsertQuery(t *testing.T) {
	repo := NewRepository[plainRow]("plain", "plains", "id", nil, mocks.NewOtel())

	assert.Equal(t, "INSERT INTO plains (id, created_at) VALUES (:id, :created_at)", repo.insertQuery())
}

func TestRepository_UpdateQuery(t *testing.T) {
	repo := newRoomRepository()

	filter := dto.FilterGroup{}
	filter.Add(dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "rooms"})

	query, args := repo.updateQuery(context.Background(), map[string]any{"status": "Occupied", "code": "R101"}, filter)

	assert.Equal(t, "UPDATE rooms SET code = :code, status = :status  WHERE (rooms.id = :id) ", query)
	assert.Equal(t, map[string]any{"id": "r-1", "status": "Occupied", "code": "R101"}, args)
}

func TestRepository_DeleteRequiresFilter(t *testing.T) {
	repo := newRoomRepository()

	_, _, err := repo.deleteQuery(context.Background(), dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	assert.ErrorIs(t, repo.Delete(context.Background(), dto.FilterGroup{}), errRequiredFilter)
}

func TestRepository_ExistRequiresFilter(t *testing.T) {
	repo := newRoomRepository()

	exist, err := repo.Exist(context.Background(), dto.FilterGroup{})

	assert.False(t, exist)
	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := newRoomRepository()

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	filter := dto.FilterGroup{}
	filter.Add(dto.Filter{Field: "active", Value: true, Operator: dto.FilterOperatorEq, Table: "rooms"})

	where, args = repo.BuildWhereClause(context.Background(), filter)
	assert.Equal(t, " WHERE (rooms.active = :active) ", where)
	assert.Equal(t, map[string]any{"active": true}, args)
}
