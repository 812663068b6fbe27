package repositories

import (
	"context"
	"fmt"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jDependencyRepository keeps the depends-on graph in Neo4j. The graph is
// purely structural: task nodes carry only their id, edges carry an id and a
// type. Task statuses live in the task store.
type Neo4jDependencyRepository struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jDependencyRepository(driver neo4j.DriverWithContext) *Neo4jDependencyRepository {
	return &Neo4jDependencyRepository{driver: driver}
}

func (r *Neo4jDependencyRepository) EnsureTaskNode(ctx context.Context, taskID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MERGE (t:Task {id: $id})`, map[string]any{"id": taskID})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to ensure task node: %w", err)
	}
	return nil
}

func (r *Neo4jDependencyRepository) RemoveTaskNode(ctx context.Context, taskID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MATCH (t:Task {id: $id}) DETACH DELETE t`, map[string]any{"id": taskID})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to remove task node: %w", err)
	}
	return nil
}

func (r *Neo4jDependencyRepository) Create(ctx context.Context, dep *models.TaskDependency) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:Task {id: $taskId}), (b:Task {id: $dependsOnId})
			MERGE (a)-[r:DEPENDS_ON]->(b)
			SET r.id = $edgeId, r.type = $type
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"taskId":      dep.TaskID,
			"dependsOnId": dep.DependsOnID,
			"edgeId":      dep.ID,
			"type":        dep.DependencyType,
		})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to create dependency relation: %w", err)
	}
	return nil
}

func (r *Neo4jDependencyRepository) GetByID(ctx context.Context, edgeID string) (*models.TaskDependency, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:Task)-[r:DEPENDS_ON {id: $edgeId}]->(b:Task)
			RETURN a.id AS taskId, b.id AS dependsOnId, r.id AS id, r.type AS type
		`
		res, err := tx.Run(ctx, query, map[string]any{"edgeId": edgeID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return recordToDependency(res.Record()), nil
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve dependency: %w", err)
	}
	if result == nil {
		return nil, errs.NotFound("dependency.notFound", edgeID)
	}
	return result.(*models.TaskDependency), nil
}

func (r *Neo4jDependencyRepository) DeleteByID(ctx context.Context, edgeID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH ()-[r:DEPENDS_ON {id: $edgeId}]->()
			DELETE r
			RETURN COUNT(r) AS deleted
		`
		res, err := tx.Run(ctx, query, map[string]any{"edgeId": edgeID})
		if err != nil {
			return int64(0), err
		}
		if res.Next(ctx) {
			return res.Record().Values[0].(int64), nil
		}
		return int64(0), nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete dependency: %w", err)
	}
	if result.(int64) == 0 {
		return errs.NotFound("dependency.notFound", edgeID)
	}
	return nil
}

func (r *Neo4jDependencyRepository) Exists(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:Task {id: $taskId})-[r:DEPENDS_ON]->(b:Task {id: $dependsOnId})
			RETURN COUNT(r) > 0 AS exists
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"taskId":      taskID,
			"dependsOnId": dependsOnID,
		})
		if err != nil {
			return false, err
		}
		if res.Next(ctx) {
			return res.Record().Values[0].(bool), nil
		}
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check if dependency exists: %w", err)
	}
	return result.(bool), nil
}

// CreatesCycle reports whether adding taskID -> dependsOnID would close a
// cycle, i.e. dependsOnID already reaches taskID through DEPENDS_ON edges.
func (r *Neo4jDependencyRepository) CreatesCycle(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	if taskID == dependsOnID {
		return true, nil
	}
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:Task {id: $taskId}), (b:Task {id: $dependsOnId})
			RETURN EXISTS((b)-[:DEPENDS_ON*1..]->(a)) AS hasCycle
		`
		res, err := tx.Run(ctx, query, map[string]any{
			"taskId":      taskID,
			"dependsOnId": dependsOnID,
		})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			val, ok := res.Record().Values[0].(bool)
			if !ok {
				return false, fmt.Errorf("unexpected result type")
			}
			return val, nil
		}
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("cycle detection failed: %w", err)
	}
	return result.(bool), nil
}

func (r *Neo4jDependencyRepository) GetByTask(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	query := `
		MATCH (a:Task {id: $taskId})-[r:DEPENDS_ON]->(b:Task)
		RETURN a.id AS taskId, b.id AS dependsOnId, r.id AS id, r.type AS type
	`
	return r.queryEdges(ctx, query, taskID)
}

func (r *Neo4jDependencyRepository) GetDependents(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	query := `
		MATCH (a:Task)-[r:DEPENDS_ON]->(b:Task {id: $taskId})
		RETURN a.id AS taskId, b.id AS dependsOnId, r.id AS id, r.type AS type
	`
	return r.queryEdges(ctx, query, taskID)
}

func (r *Neo4jDependencyRepository) queryEdges(ctx context.Context, query, taskID string) ([]models.TaskDependency, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"taskId": taskID})
		if err != nil {
			return nil, err
		}

		var edges []models.TaskDependency
		for res.Next(ctx) {
			edges = append(edges, *recordToDependency(res.Record()))
		}
		return edges, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve dependency edges: %w", err)
	}
	return result.([]models.TaskDependency), nil
}

func recordToDependency(record *neo4j.Record) *models.TaskDependency {
	taskID, _ := record.Get("taskId")
	dependsOnID, _ := record.Get("dependsOnId")
	id, _ := record.Get("id")
	depType, _ := record.Get("type")

	return &models.TaskDependency{
		ID:             id.(string),
		TaskID:         taskID.(string),
		DependsOnID:    dependsOnID.(string),
		DependencyType: depType.(string),
	}
}
