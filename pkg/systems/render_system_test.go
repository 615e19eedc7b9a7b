package systems

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decker502/spin3d/pkg/ecs"
)

func TestNewRenderSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	clear := color.RGBA{R: 7, G: 2, B: 20, A: 255}
	system := NewRenderSystem(em, clear)

	assert.Equal(t, clear, system.clearColor)
	assert.Nil(t, system.whitePixel, "纹理在首次绘制时才创建")
	assert.False(t, system.drawEdges)
	assert.Equal(t, 0, system.LastTriangleCount())

	system.SetDrawEdges(true)
	assert.True(t, system.drawEdges)
}

func TestRenderSystemBatchLimit(t *testing.T) {
	// 每批顶点数必须能用 uint16 索引且为 3 的倍数
	assert.LessOrEqual(t, maxBatchVertices+3, 65535)
	assert.Equal(t, 0, maxBatchVertices%3)
}
