package types

// TowerType 定义塔的类型
type TowerType int

const (
	// TowerLaser 激光塔：持续照射单个目标
	TowerLaser TowerType = iota
	// TowerMortar 迫击炮塔：发射抛物线炮弹，范围伤害
	TowerMortar
)

var towerTypeStringMap = map[TowerType]string{
	TowerLaser:  "laser",
	TowerMortar: "mortar",
}

// String 返回塔类型的配置字符串表示
func (t TowerType) String() string {
	if s, ok := towerTypeStringMap[t]; ok {
		return s
	}
	return "unknown"
}

// TowerTypeFromString 将配置字符串转换为 TowerType
// 第二个返回值表示是否识别成功
func TowerTypeFromString(s string) (TowerType, bool) {
	for t, name := range towerTypeStringMap {
		if name == s {
			return t, true
		}
	}
	return TowerLaser, false
}
