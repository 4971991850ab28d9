package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransform struct {
	X, Z float64
}

type testHealth struct {
	Value float64
}

type testTargetPoint struct {
	Enabled bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始,0保留为无效ID
	if id1 != 1 || id2 != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", id1, id2)
	}
	if id1 == InvalidEntity {
		t.Error("created entity should not be InvalidEntity")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testTransform{X: 1.5, Z: -2})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransform{}))
	if !found {
		t.Fatal("Component should be found")
	}
	tr := comp.(*testTransform)
	if tr.X != 1.5 || tr.Z != -2 {
		t.Errorf("Component data mismatch, got (%f, %f)", tr.X, tr.Z)
	}

	// 对不存在的实体添加组件被忽略
	em.AddComponent(EntityID(99), &testTransform{})
	if em.Exists(EntityID(99)) {
		t.Error("AddComponent should not create entities")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testHealth{Value: 10})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记

	// 清理前组件仍可访问，但实体不再存活
	if !em.HasComponent(id, reflect.TypeOf(&testHealth{})) {
		t.Error("Entity should still exist before cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}

	if n := em.RemoveMarkedEntities(); n != 1 {
		t.Errorf("expected 1 removed entity, got %d", n)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if n := em.RemoveMarkedEntities(); n != 0 {
		t.Errorf("second cleanup should remove nothing, got %d", n)
	}
}

// TestGetEntitiesWithSorted 查询结果按 ID 升序
func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		if i%3 == 0 {
			em.AddComponent(id, &testTransform{})
			em.AddComponent(id, &testHealth{})
			want = append(want, id)
		} else {
			em.AddComponent(id, &testTransform{})
		}
	}

	got := GetEntitiesWith2[*testTransform, *testHealth](em)
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result not sorted: index %d expected %d, got %d", i, want[i], got[i])
		}
	}

	if all := GetEntitiesWith1[*testTransform](em); len(all) != 50 {
		t.Errorf("expected 50 entities with transform, got %d", len(all))
	}
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testHealth{Value: 42})
	AddComponent(em, id, &testTargetPoint{Enabled: true})

	h, ok := GetComponent[*testHealth](em, id)
	if !ok || h.Value != 42 {
		t.Fatalf("GetComponent failed: ok=%v", ok)
	}

	// 泛型与反射 API 共享同一存储
	if !em.HasComponent(id, reflect.TypeOf(&testTargetPoint{})) {
		t.Error("generic AddComponent should be visible to reflection API")
	}

	if HasComponent[*testTransform](em, id) {
		t.Error("HasComponent should be false for missing component")
	}
	if _, ok := GetComponent[*testTransform](em, id); ok {
		t.Error("GetComponent should fail for missing component")
	}

	RemoveComponent[*testTargetPoint](em, id)
	if HasComponent[*testTargetPoint](em, id) {
		t.Error("RemoveComponent should remove the component")
	}

	if got := GetEntitiesWith3[*testHealth, *testTargetPoint, *testTransform](em); len(got) != 0 {
		t.Errorf("expected no entities, got %v", got)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	em.CreateEntity()
	em.DestroyEntity(a)

	em.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("expected 0 entities after Clear, got %d", em.EntityCount())
	}
	if n := em.RemoveMarkedEntities(); n != 0 {
		t.Errorf("Clear should drop pending destroys, got %d", n)
	}
	if id := em.CreateEntity(); id != 3 {
		t.Errorf("ids should keep increasing after Clear, got %d", id)
	}
}
