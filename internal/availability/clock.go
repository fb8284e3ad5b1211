package availability

import "time"

// Clock 抽象当前时间，使跨周、跨月边界的校验逻辑可以做确定性测试
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// FixedClock 返回一个始终返回 t 的时钟，测试用
func FixedClock(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
