package components

import "github.com/gonewx/towerdefense/pkg/utils"

// TransformComponent 敌人的根变换和模型偏移
//
// 根节点在转弯时位于转弯圆心，模型沿根节点的右方向偏移 ModelOffset。
// 渲染层只读取这里的值，核心不会回读渲染状态。
type TransformComponent struct {
	Position    utils.Vec3 // 根节点世界坐标
	Yaw         float64    // 根节点偏航角（度），北=0，顺时针
	Scale       float64    // 模型缩放
	ModelOffset float64    // 模型在根节点局部 x 轴上的偏移
}

// ModelPosition 返回模型的世界坐标
func (t *TransformComponent) ModelPosition() utils.Vec3 {
	return t.Position.Add(utils.YawRight(t.Yaw).Scale(t.ModelOffset))
}
