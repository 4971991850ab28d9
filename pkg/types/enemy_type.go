// Package types 定义共享的基础类型
package types

// EnemyType 定义敌人的体型类别
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota
	EnemySmall           // 小型
	EnemyMedium          // 中型
	EnemyLarge           // 大型
)

// enemyTypeStringMap 敌人类型到配置字符串的映射
var enemyTypeStringMap = map[EnemyType]string{
	EnemySmall:  "small",
	EnemyMedium: "medium",
	EnemyLarge:  "large",
}

// stringToEnemyTypeMap 配置字符串到敌人类型的反向映射
var stringToEnemyTypeMap map[string]EnemyType

func init() {
	stringToEnemyTypeMap = make(map[string]EnemyType, len(enemyTypeStringMap))
	for et, s := range enemyTypeStringMap {
		stringToEnemyTypeMap[s] = et
	}
}

// String 返回敌人类型的配置字符串表示（用于配置文件匹配）
func (e EnemyType) String() string {
	if s, ok := enemyTypeStringMap[e]; ok {
		return s
	}
	return "unknown"
}

// EnemyTypeFromString 将配置字符串转换为 EnemyType
func EnemyTypeFromString(s string) EnemyType {
	if et, ok := stringToEnemyTypeMap[s]; ok {
		return et
	}
	return EnemyUnknown
}

// AllEnemyTypes 返回所有有效的敌人类型（按声明顺序）
func AllEnemyTypes() []EnemyType {
	return []EnemyType{EnemySmall, EnemyMedium, EnemyLarge}
}
