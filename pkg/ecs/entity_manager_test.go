package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testVelocityComponent struct {
	VX, VY, VZ float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 live entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	pos := &testPositionComponent{X: 1, Y: 2, Z: 3}
	em.AddComponent(id, pos)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved != pos {
		t.Error("GetComponent should return the stored pointer")
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()

	// 未创建的实体不应接受组件
	em.AddComponent(EntityID(42), &testPositionComponent{})
	if em.HasComponent(EntityID(42), reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Unknown entity should not receive components")
	}
}

func TestAddComponentReplacesSameType(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testVelocityComponent{VX: 1})
	em.AddComponent(id, &testVelocityComponent{VX: 2})

	vel, ok := GetComponent[*testVelocityComponent](em, id)
	if !ok {
		t.Fatal("Velocity component should be found")
	}
	// 每种类型最多一个组件实例
	if vel.VX != 2 {
		t.Errorf("Expected replaced component VX=2, got %f", vel.VX)
	}
	if n := len(GetEntitiesWith1[*testVelocityComponent](em)); n != 1 {
		t.Errorf("Expected 1 entity with velocity, got %d", n)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testPositionComponent{})

	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should have component after adding")
	}

	em.RemoveComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})
	em.AddComponent(id, &testVelocityComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.IsAlive(id) || !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体及其所有组件消失
	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) ||
		em.HasComponent(id, reflect.TypeOf(&testVelocityComponent{})) {
		t.Error("Components should be removed after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}

	// 未注册过的组件类型
	none := em.GetEntitiesWith(reflect.TypeOf(&struct{ A int }{}))
	if len(none) != 0 {
		t.Errorf("Expected no entities for unused type, got %v", none)
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
	}

	// 多次查询顺序一致且按ID升序
	for round := 0; round < 5; round++ {
		ids := GetEntitiesWith1[*testPositionComponent](em)
		for i := 1; i < len(ids); i++ {
			if ids[i-1] >= ids[i] {
				t.Fatalf("Query result not sorted at %d: %v", i, ids)
			}
		}
	}
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 10})
	AddComponent(em, id, &testVelocityComponent{VX: 5})

	if !HasComponent[*testPositionComponent](em, id) {
		t.Fatal("HasComponent should report position")
	}

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos.X != 10 {
		t.Fatalf("GetComponent mismatch: ok=%v pos=%+v", ok, pos)
	}

	if got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em); len(got) != 1 {
		t.Errorf("GetEntitiesWith2 expected 1 entity, got %d", len(got))
	}

	RemoveComponent[*testVelocityComponent](em, id)
	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("Velocity should be removed")
	}

	// 值类型与指针类型是不同的组件类型
	if _, ok := GetComponent[testPositionComponent](em, id); ok {
		t.Error("Value type lookup should not match pointer component")
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	}
}
