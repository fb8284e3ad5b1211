package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/config"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// remindOnce 扫描一次即将开始的预约，逐条发送提醒邮件并标记为已提醒
func remindOnce(logger *slog.Logger, cfg *config.Config, repo *repository.Repository, ch *amqp.Channel, loc *time.Location) {
	now := time.Now().In(loc)
	lead := time.Duration(cfg.Reminder.LeadTime) * time.Second

	bookings, err := repo.GetBookingsDueReminder(now, lead)
	if err != nil {
		logger.Error("无法获取待提醒的预约", slog.String("error", err.Error()))
		return
	}

	for _, booking := range bookings {
		customer, err := repo.GetUserByID(booking.CustomerID)
		if err != nil {
			logger.Error("无法获取预约顾客信息", slog.Int64("bookingID", booking.ID), slog.String("error", err.Error()))
			continue
		}
		staff, err := repo.GetUserByID(booking.StaffID)
		if err != nil {
			logger.Error("无法获取预约理疗师信息", slog.Int64("bookingID", booking.ID), slog.String("error", err.Error()))
			continue
		}
		service, err := repo.GetSpaServiceByID(booking.ServiceID)
		if err != nil {
			logger.Error("无法获取预约项目信息", slog.Int64("bookingID", booking.ID), slog.String("error", err.Error()))
			continue
		}

		message := domain.MailMessage{
			Type: "booking_reminder",
			To:   customer.Email,
			Data: domain.BookingReminderMailData{
				FullName:    customer.FullName,
				ServiceName: service.Name,
				StaffName:   staff.FullName,
				BookingDate: booking.BookingDate.In(loc).Format("2006-01-02"),
				StartTime:   booking.StartTime,
				EndTime:     booking.EndTime,
			},
		}
		body, err := json.Marshal(message)
		if err != nil {
			logger.Error("无法序列化提醒邮件", slog.Int64("bookingID", booking.ID), slog.String("error", err.Error()))
			continue
		}

		publishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = ch.PublishWithContext(publishCtx, "", "email_queue", false, false, amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
		cancel()
		if err != nil {
			logger.Error("无法发布提醒邮件", slog.Int64("bookingID", booking.ID), slog.String("error", err.Error()))
			continue
		}

		// 先发布后标记，发布失败时下一轮扫描会重试
		if err := repo.MarkBookingReminded(booking); err != nil {
			logger.Error("无法标记预约为已提醒", slog.Int64("bookingID", booking.ID), slog.String("error", err.Error()))
			continue
		}
		logger.Info("已发送预约提醒", slog.Int64("bookingID", booking.ID), slog.String("email", customer.Email))
	}
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Office.Timezone)
	if err != nil {
		logger.Error("无法加载时区", "error", err)
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
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

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 连接 rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法建立通道", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法声明队列", "error", err)
		return
	}

	/**********************************************
	 * 定时扫描待提醒的预约
	 **********************************************/
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.Reminder.ScanInterval) * time.Second)
	defer ticker.Stop()

	logger.Info("提醒 worker 已启动", "scanInterval", cfg.Reminder.ScanInterval, "leadTime", cfg.Reminder.LeadTime)
	remindOnce(logger, cfg, repo, ch, loc)

	for {
		select {
		case <-ticker.C:
			remindOnce(logger, cfg, repo, ch, loc)
		case <-sigChan:
			logger.Info("正在关闭提醒 worker...")
			logger.Info("提醒 worker 已成功关闭")
			return
		}
	}
}
