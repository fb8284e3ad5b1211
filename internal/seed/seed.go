package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/repository"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/utils"
)

// ServiceCatalog 是门店实际提供的理疗项目，价格单位为分
var ServiceCatalog = []domain.SpaService{
	{
		Name:            "中式推拿",
		Description:     "传统手法全身推拿，疏通经络，缓解肌肉疲劳",
		DurationMinutes: 60,
		Price:           12800,
	},
	{
		Name:            "精油开背",
		Description:     "植物精油配合背部按摩，放松肩颈与背部",
		DurationMinutes: 90,
		Price:           19800,
	},
	{
		Name:            "足底按摩",
		Description:     "足底反射区按摩，促进血液循环",
		DurationMinutes: 45,
		Price:           8800,
	},
	{
		Name:            "头颈肩理疗",
		Description:     "针对久坐人群的头颈肩放松项目",
		DurationMinutes: 30,
		Price:           6800,
	},
	{
		Name:            "热石理疗",
		Description:     "热石配合全身按摩，深层放松",
		DurationMinutes: 120,
		Price:           26800,
	},
}

var rosterHeaders = []string{"工号", "姓名", "邮箱", "员工类型"}

// SeedRealData 插入真实的理疗项目目录与员工花名册，
// 并为每位学生兼职理疗师生成下一周的排班时间提交
func SeedRealData(r *repository.Repository) {
	// 插入理疗项目目录
	for i := range ServiceCatalog {
		service := ServiceCatalog[i]
		if err := r.CreateSpaService(&service); err != nil {
			slog.Error("插入理疗项目失败", "name", service.Name, "error", err)
			continue
		}
	}

	// 读取员工花名册
	file, err := os.Open("./internal/seed/data/staff_roster.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}
	for _, header := range rosterHeaders {
		if !slices.Contains(headers, header) {
			slog.Error("花名册缺少必要的列", "header", header)
			return
		}
	}

	// 读取数据
	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// 插入理疗师及其下一周的排班时间提交
	nextWeek := time.Now().AddDate(0, 0, 7)
	for _, record := range records {
		username := strings.TrimSpace(record["工号"])
		if username == "" {
			slog.Error("没有找到工号", "record", record)
			continue
		}

		user, err := r.GetUserByUsername(username)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				// 表示该理疗师不在数据库中，需要新建并插入
				user = &domain.User{
					Username:     username,
					PasswordHash: "$2a$10$aUTaWl3vmXuQFocBkb9Qx.YJPAzNoaAcj2VC5tI45l1Roh24meCgO", // ecnc@test8403
					FullName:     record["姓名"],
					Email:        record["邮箱"],
					Role:         domain.RoleStaff,
					StaffType:    domain.StaffType(record["员工类型"]),
				}

				if err := r.CreateUser(user); err != nil {
					slog.Error("插入理疗师失败", "error", err)
					continue
				}
			default:
				slog.Error("获取理疗师失败", "error", err)
				continue
			}
		}

		// 全职理疗师的排班由管理员录入，不需要生成提交
		if user.StaffType != domain.StaffTypeStudent {
			continue
		}

		submission := utils.GenerateRandomWeeklySubmission(user.ID, nextWeek)
		if _, err := r.ReplaceWeeklyAvailability(submission); err != nil {
			slog.Error("插入排班时间提交失败", "username", username, "error", err)
			continue
		}
	}

	slog.Info("插入数据完成")
}
