package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleCustomer,
	domain.RoleStaff,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var staffTypes = []domain.StaffType{
	domain.StaffTypeStudent,
	domain.StaffTypeFullTime,
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	// 只有理疗师才有员工类型
	if user.Role == domain.RoleStaff {
		user.StaffType = staffTypes[rand.Intn(len(staffTypes))]
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomSpaService() *domain.SpaService {
	return &domain.SpaService{
		Name:            "理疗项目" + GenerateRandomID(3, 3),
		Description:     "项目描述" + GenerateRandomID(20, 10),
		DurationMinutes: int32((rand.Intn(6) + 1) * 30), // 30 分钟到 3 小时
		Price:           int64((rand.Intn(40) + 10) * 1000),
	}
}

// GenerateRandomWeeklySubmission 为某个员工随机生成下一周的排班时间提交，
// 每天一个 2~6 小时的时间段，落在营业时间 10:00-19:00 内
func GenerateRandomWeeklySubmission(staffID int64, from time.Time) *domain.WeeklySubmission {
	weekStart, weekEnd := availability.WeekBounds(from)

	submission := &domain.WeeklySubmission{
		StaffID:   staffID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Mode:      domain.ModeSubmit,
		Entries:   make([]domain.AvailabilityEntry, 0, 7),
	}

	days := rand.Intn(5) + 2 // 2~6 天
	for i := 0; i < days; i++ {
		startHour := rand.Intn(4) + 10 // 10~13 点开始
		durationHours := rand.Intn(5) + 2

		submission.Entries = append(submission.Entries, domain.AvailabilityEntry{
			ScheduleDate: weekStart.AddDate(0, 0, i),
			StartTime:    fmt.Sprintf("%02d:00", startHour),
			EndTime:      fmt.Sprintf("%02d:00", startHour+durationHours),
		})
	}

	return submission
}

// GenerateRandomBooking 随机生成一条未来的预约，时间段与项目时长一致
func GenerateRandomBooking(customerID int64, staffID int64, service *domain.SpaService) *domain.Booking {
	bookingDate := time.Now().AddDate(0, 0, rand.Intn(7)+1)

	// 开始时间取营业时间内的半点，保证结束时间不超过 19:00
	span := (19*60 - int(service.DurationMinutes) - 10*60) / 30
	startMinutes := 10*60 + rand.Intn(span+1)*30

	booking := &domain.Booking{
		CustomerID:  customerID,
		StaffID:     staffID,
		ServiceID:   service.ID,
		BookingDate: time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location()),
		StartTime:   FormatClock(startMinutes),
		EndTime:     FormatClock(startMinutes + int(service.DurationMinutes)),
		Status:      domain.BookingStatusBooked,
	}

	return booking
}
