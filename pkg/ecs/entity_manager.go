package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 保留为无效ID
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
//
// 组件按类型分别存储：ComponentType -> EntityID -> Component实例。
// 每个实体每种组件类型最多只有一个实例，重复添加会覆盖旧组件。
type EntityManager struct {
	nextID uint64
	// 存活实体集合
	entities map[EntityID]struct{}
	// 组件存储: ComponentType -> EntityID -> Component实例
	stores map[reflect.Type]map[EntityID]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		entities:          make(map[EntityID]struct{}),
		stores:            make(map[reflect.Type]map[EntityID]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.entities[id] = struct{}{}
	return id
}

// IsAlive 检查实体是否存在
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 返回当前存活的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent 为实体添加组件
// 对不存在的实体调用时忽略
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if !em.IsAlive(id) || component == nil {
		return
	}
	componentType := reflect.TypeOf(component)
	store, ok := em.stores[componentType]
	if !ok {
		store = make(map[EntityID]interface{})
		em.stores[componentType] = store
	}
	store[id] = component
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if store, ok := em.stores[componentType]; ok {
		delete(store, id)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if store, ok := em.stores[componentType]; ok {
		if comp, found := store[id]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		for _, store := range em.stores {
			delete(store, id)
		}
		delete(em.entities, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按ID升序排列
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	if len(componentTypes) == 0 {
		for id := range em.entities {
			result = append(result, id)
		}
		sortEntityIDs(result)
		return result
	}

	// 从最小的组件存储开始遍历，减少比较次数
	stores := make([]map[EntityID]interface{}, 0, len(componentTypes))
	for _, ct := range componentTypes {
		store, ok := em.stores[ct]
		if !ok || len(store) == 0 {
			return result
		}
		stores = append(stores, store)
	}
	sort.Slice(stores, func(i, j int) bool { return len(stores[i]) < len(stores[j]) })

	for id := range stores[0] {
		hasAll := true
		for _, store := range stores[1:] {
			if _, found := store[id]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sortEntityIDs(result)
	return result
}

func sortEntityIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
