package systems

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/utils"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = 65535 - 3

// RenderSystem 将场景绘制到 Ebiten 屏幕
//
// 渲染管线：
//   - ProjectScene 完成投影、背面剔除、光照和深度排序
//   - 三角形按从远到近的顺序批量提交给 DrawTriangles（画家算法）
//   - 可选地用 vector.StrokeLine 描边，便于观察旋转
//
// 只在 Draw 阶段读取组件，不修改任何实体。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	whitePixel    *ebiten.Image // 首次 Draw 时创建
	clearColor    color.Color
	drawEdges     bool
	edgeColor     color.Color

	vertices []ebiten.Vertex // 顶点数组（复用，避免每帧分配）
	indices  []uint16        // 索引数组（复用，避免每帧分配）

	lastTriangleCount int
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - clearColor: 每帧清屏颜色
func NewRenderSystem(em *ecs.EntityManager, clearColor color.Color) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		clearColor:    clearColor,
		edgeColor:     color.RGBA{R: 255, G: 255, B: 255, A: 96},
		vertices:      make([]ebiten.Vertex, 0, 4096),
		indices:       make([]uint16, 0, 4096),
	}
}

// newWhitePixel 3x3 白色图片，取中心 1x1 作为纯色纹理，避免边缘采样
func newWhitePixel() *ebiten.Image {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// SetDrawEdges 设置是否为三角形描边
func (s *RenderSystem) SetDrawEdges(enabled bool) {
	s.drawEdges = enabled
}

// LastTriangleCount 返回上一帧绘制的三角形数量
func (s *RenderSystem) LastTriangleCount() int {
	return s.lastTriangleCount
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.clearColor)

	bounds := screen.Bounds()
	tris := ProjectScene(s.entityManager, float64(bounds.Dx()), float64(bounds.Dy()))
	s.lastTriangleCount = len(tris)
	if len(tris) == 0 {
		return
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for _, tri := range tris {
		if len(s.vertices)+3 > maxBatchVertices {
			s.flush(screen)
		}

		rgba := utils.ToRGBA(tri.Color, 1)
		r := float32(rgba.R) / 255
		g := float32(rgba.G) / 255
		b := float32(rgba.B) / 255

		base := uint16(len(s.vertices))
		for _, p := range tri.Points {
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX:   float32(p.X),
				DstY:   float32(p.Y),
				SrcX:   1.5,
				SrcY:   1.5,
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: 1,
			})
		}
		s.indices = append(s.indices, base, base+1, base+2)
	}
	s.flush(screen)

	if s.drawEdges {
		for _, tri := range tris {
			for k := 0; k < 3; k++ {
				a, b := tri.Points[k], tri.Points[(k+1)%3]
				vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, s.edgeColor, true)
			}
		}
	}
}

// flush 提交当前批次并清空缓冲
func (s *RenderSystem) flush(screen *ebiten.Image) {
	if len(s.indices) == 0 {
		return
	}
	if s.whitePixel == nil {
		s.whitePixel = newWhitePixel()
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, s.whitePixel, op)
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}
