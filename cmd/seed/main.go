package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/config"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/repository"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/seed"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var weekStartStr string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机理疗项目, 3: 插入随机排班时间提交, 4: 通过指定周的待审核排班, 5: 插入随机预约, 6: 插入真实数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&weekStartStr, "week-start", "", "目标周内的任意一天 (格式 2006-01-02，默认为下一周)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Office.Timezone)
	if err != nil {
		logger.Error("无法加载时区", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 解析目标周
	weekOfInterest := time.Now().In(loc).AddDate(0, 0, 7)
	if weekStartStr != "" {
		weekOfInterest, err = time.ParseInLocation("2006-01-02", weekStartStr, loc)
		if err != nil {
			logger.Error("无法解析目标周", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	weekStart, weekEnd := availability.WeekBounds(weekOfInterest)

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的理疗项目数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				service := utils.GenerateRandomSpaService()
				if err := repo.CreateSpaService(service); err != nil {
					slog.Error("无法插入理疗项目", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入理疗项目成功", slog.Int("count", n-cnt))
		}
	case 3:
		// 为每一位在职的学生兼职理疗师生成目标周的排班时间提交
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, user := range users {
			if user.Role != domain.RoleStaff || user.StaffType != domain.StaffTypeStudent || !user.IsActive {
				continue
			}

			submission := utils.GenerateRandomWeeklySubmission(user.ID, weekOfInterest)
			if _, err := repo.ReplaceWeeklyAvailability(submission); err != nil {
				slog.Error("无法插入排班时间提交", slog.String("username", user.Username), slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入排班时间提交成功", slog.Int("count", cnt))
	case 4:
		// 通过目标周所有待审核的排班
		rows, err := repo.GetPendingScheduleRows(weekStart, weekEnd)
		if err != nil {
			slog.Error("无法获取待审核的排班记录", slog.String("error", err.Error()))
			return
		}

		staffIDs := make(map[int64]struct{})
		for _, row := range rows {
			staffIDs[row.StaffID] = struct{}{}
		}

		cnt := 0
		for staffID := range staffIDs {
			affected, err := repo.ApproveWeeklySchedule(staffID, weekStart, weekEnd)
			if err != nil {
				slog.Error("无法通过排班", slog.Int64("staffID", staffID), slog.String("error", err.Error()))
				continue
			}

			cnt += int(affected)
		}

		slog.Info("通过排班成功", slog.Int("count", cnt))
	case 5:
		if n <= 0 {
			slog.Error("请输入合法的预约数量")
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}
		services, err := repo.GetAllSpaServices()
		if err != nil {
			slog.Error("无法获取所有理疗项目", slog.String("error", err.Error()))
			return
		}

		var customers, staffs []*domain.User
		for _, user := range users {
			switch {
			case user.Role == domain.RoleCustomer:
				customers = append(customers, user)
			case user.Role == domain.RoleStaff && user.IsActive:
				staffs = append(staffs, user)
			}
		}
		if len(customers) == 0 || len(staffs) == 0 || len(services) == 0 {
			slog.Error("数据库中缺少顾客、理疗师或理疗项目，请先插入")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			customer := customers[rand.Intn(len(customers))]
			staff := staffs[rand.Intn(len(staffs))]
			service := services[rand.Intn(len(services))]

			// 在该理疗师目标周已通过的排班里找一个能容纳该项目的时间段
			schedules, err := repo.GetScheduleRowsByStaffAndWeek(staff.ID, weekStart, weekEnd)
			if err != nil {
				slog.Error("无法获取排班记录", slog.String("error", err.Error()))
				continue
			}

			booking := utils.GenerateRandomBooking(customer.ID, staff.ID, service)
			matched := false
			for _, row := range schedules {
				if row.ApprovalStatus != domain.ApprovalStatusApproved || row.Status != domain.ScheduleStatusActive {
					continue
				}
				endTime, err := utils.ComputeBookingEnd(row.StartTime, service.DurationMinutes)
				if err != nil || endTime > row.EndTime {
					continue
				}

				booking.BookingDate = row.ScheduleDate
				booking.StartTime = row.StartTime
				booking.EndTime = endTime
				matched = true
				break
			}
			if !matched {
				slog.Error("该理疗师在目标周没有能容纳该项目的排班", slog.String("username", staff.Username))
				continue
			}

			if err := repo.CreateBooking(booking); err != nil {
				slog.Error("无法插入预约", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入预约成功", slog.Int("count", cnt))
	case 6:
		seed.SeedRealData(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
