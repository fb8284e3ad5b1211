package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "10:00", want: 600},
		{input: "18:30", want: 1110},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "9:0", wantErr: true},
		{input: "十点", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("解析 %q 应该失败", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("解析 %q 不应该失败: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("解析 %q 应得到 %d 分钟，实际为 %d", tt.input, tt.want, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(600); got != "10:00" {
		t.Fatalf("600 分钟应格式化为 10:00，实际为 %s", got)
	}
	if got := FormatClock(1110); got != "18:30" {
		t.Fatalf("1110 分钟应格式化为 18:30，实际为 %s", got)
	}
	if got := FormatClock(65); got != "01:05" {
		t.Fatalf("65 分钟应格式化为 01:05，实际为 %s", got)
	}
}

func TestComputeBookingEnd(t *testing.T) {
	end, err := ComputeBookingEnd("10:00", 90)
	if err != nil {
		t.Fatalf("推算结束时间不应该失败: %v", err)
	}
	if end != "11:30" {
		t.Fatalf("10:00 开始的 90 分钟项目应在 11:30 结束，实际为 %s", end)
	}

	if _, err := ComputeBookingEnd("23:30", 60); err == nil {
		t.Fatalf("跨天的预约应该被拒绝")
	}

	if _, err := ComputeBookingEnd("十点", 60); err == nil {
		t.Fatalf("格式错误的开始时间应该被拒绝")
	}
}

func TestValidateBookingInFuture(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, loc)

	tomorrow := time.Date(2025, 6, 3, 0, 0, 0, 0, loc)
	if err := ValidateBookingInFuture(tomorrow, "10:00", now); err != nil {
		t.Fatalf("明天的预约不应该被拒绝: %v", err)
	}

	today := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	if err := ValidateBookingInFuture(today, "14:00", now); err != nil {
		t.Fatalf("今天下午的预约不应该被拒绝: %v", err)
	}
	if err := ValidateBookingInFuture(today, "10:00", now); err == nil {
		t.Fatalf("已经过去的时间应该被拒绝")
	}
	if err := ValidateBookingInFuture(today, "12:00", now); err == nil {
		t.Fatalf("恰好等于当前时间的预约应该被拒绝")
	}
}
