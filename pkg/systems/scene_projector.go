package systems

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/utils"
)

// ShadedTriangle 已投影到屏幕并完成着色的三角形
type ShadedTriangle struct {
	Points [3]utils.ScreenPoint
	Color  components.RGB

	// Depth 三个顶点的平均 NDC 深度，用于画家算法排序
	Depth float64

	Entity ecs.EntityID
}

// FindCamera 返回场景中第一个相机实体（按ID顺序）
func FindCamera(em *ecs.EntityManager) (ecs.EntityID, *components.CameraComponent, *components.TransformComponent, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.CameraComponent, *components.TransformComponent](em) {
		cam, ok := ecs.GetComponent[*components.CameraComponent](em, id)
		if !ok {
			continue
		}
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			continue
		}
		return id, cam, tr, true
	}
	return ecs.InvalidEntity, nil, nil, false
}

// CollectLights 收集所有点光源的世界位置
func CollectLights(em *ecs.EntityManager) []utils.LightSample {
	ids := ecs.GetEntitiesWith2[*components.PointLightComponent, *components.TransformComponent](em)
	lights := make([]utils.LightSample, 0, len(ids))
	for _, id := range ids {
		light, _ := ecs.GetComponent[*components.PointLightComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		lights = append(lights, utils.LightSample{Position: tr.Translation, Light: light})
	}
	return lights
}

// ProjectScene 将场景中所有网格投影到 width×height 的屏幕
//
// 只读访问组件，不修改任何实体。背面和落在相机后方的三角形被剔除，
// 结果按深度从远到近排序，可直接按顺序绘制。没有相机时返回 nil。
func ProjectScene(em *ecs.EntityManager, width, height float64) []ShadedTriangle {
	_, cam, camTr, ok := FindCamera(em)
	if !ok {
		return nil
	}

	viewProj := cam.Projection().Mul4(camTr.ViewMatrix())
	eye := camTr.Translation
	lights := CollectLights(em)

	var tris []ShadedTriangle
	meshes := ecs.GetEntitiesWith3[
		*components.MeshComponent,
		*components.MaterialComponent,
		*components.TransformComponent,
	](em)

	for _, id := range meshes {
		mesh, _ := ecs.GetComponent[*components.MeshComponent](em, id)
		material, _ := ecs.GetComponent[*components.MaterialComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		model := tr.Matrix()
		world := make([]mgl64.Vec3, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			world[i] = model.Mul4x1(v.Vec4(1)).Vec3()
		}

		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			a, b, c := world[mesh.Indices[i]], world[mesh.Indices[i+1]], world[mesh.Indices[i+2]]
			normal := utils.FaceNormal(a, b, c)
			if normal == (mgl64.Vec3{}) || !utils.IsFrontFacing(normal, a, eye) {
				continue
			}

			var pts [3]utils.ScreenPoint
			visible := true
			for k, p := range [3]mgl64.Vec3{a, b, c} {
				sp, ok := utils.ProjectPoint(viewProj, p, width, height)
				if !ok {
					visible = false
					break
				}
				pts[k] = sp
			}
			if !visible {
				continue
			}

			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			tris = append(tris, ShadedTriangle{
				Points: pts,
				Color:  utils.ShadeLambert(material, centroid, normal, lights),
				Depth:  (pts[0].Depth + pts[1].Depth + pts[2].Depth) / 3,
				Entity: id,
			})
		}
	}

	sort.SliceStable(tris, func(i, j int) bool { return tris[i].Depth > tris[j].Depth })
	return tris
}
