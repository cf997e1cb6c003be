// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aspilic/itanket/auth"
)

// The fixed IT satisfaction survey: 10 questions, 5 options each.
// Option texts are data, not code - the reporting dictionaries in the
// handlers package match on these exact strings.
var seedQuestions = []struct {
	id   int
	text string
	opts [5]string
}{
	{1, "1- Bilgi İşlem ekibine ilettiğiniz sorunların çözüm süresinden ne kadar memnunsunuz?",
		[5]string{"Çok memnunum", "Memnunum", "Kararsızım", "Memnun değilim", "Hiç memnun değilim"}},
	{2, "2- Çözülen sorunların kalıcı ve tatmin edici olduğunu düşünüyor musunuz?",
		[5]string{"Kesinlikle katılıyorum", "Katılıyorum", "Kararsızım", "Katılmıyorum", "Kesinlikle katılmıyorum"}},
	{3, "3- Bilgi işlem ekibi sizinle iletişim kurarken yeterince açık, anlaşılır ve profesyonel mi?",
		[5]string{"Kesinlikle katılıyorum", "Katılıyorum", "Kararsızım", "Katılmıyorum", "Kesinlikle katılmıyorum"}},
	{4, "4- Sorun yaşadığınızda Bilgi işlem ekibine ulaşmak ne kadar kolay oluyor?",
		[5]string{"Çok kolay", "Kolay", "Ne kolay ne zor", "Zor", "Çok zor"}},
	{5, "5- Departman, acil konulara gerekli önceliği veriyor mu?",
		[5]string{"Her zaman", "Çoğu zaman", "Bazen", "Nadiren", "Hiçbir zaman"}},
	{6, "6- Bilgi işlem ekibi olası sorunları öngörüp önceden önlem alıyor mu?",
		[5]string{"Kesinlikle katılıyorum", "Katılıyorum", "Kararsızım", "Katılmıyorum", "Kesinlikle katılmıyorum"}},
	{7, "7- Şirketin sunduğu bilgisayar, ağ, yazılım vb. teknolojik altyapının yeterliliğini nasıl değerlendirirsiniz?",
		[5]string{"Çok yeterli", "Yeterli", "Orta düzeyde", "Yetersiz", "Çok yetersiz"}},
	{8, "8- Bilgi işlem departmanı, yeni sistemler/yazılımlar için yeterli eğitim veya bilgilendirme sağlıyor mu?",
		[5]string{"Her zaman", "Çoğu zaman", "Bazen", "Nadiren", "Hiçbir zaman"}},
	{9, "9- Bilgi İşlem ekibi sizinle işbirliği yaparken çözüm odaklı bir yaklaşım sergiliyor mu?",
		[5]string{"Kesinlikle katılıyorum", "Katılıyorum", "Kararsızım", "Katılmıyorum", "Kesinlikle katılmıyorum"}},
	{10, "10- Genel olarak Bilgi İşlem departmanının performansından ne kadar memnunsunuz?",
		[5]string{"Çok memnunum", "Memnunum", "Kararsızım", "Memnun değilim", "Hiç memnun değilim"}},
}

// ErrAdminPasswordRequired is returned when the database has no admin user
// and no seed password was configured.
var ErrAdminPasswordRequired = errors.New("no admin user exists and ADMIN_PASSWORD is not set")

// Seed populates all seed data idempotently: the fixed question/option set
// with zeroed stats, an admin user, and one active survey link.
func Seed(db *sql.DB, adminUsername, adminPassword string, iterations int) error {
	if err := SeedSurvey(db); err != nil {
		return err
	}
	if err := SeedAdmin(db, adminUsername, adminPassword, iterations); err != nil {
		return err
	}
	return SeedLink(db)
}

// SeedSurvey inserts the 10 fixed questions, their 5 options each and a
// zeroed stat row per (question, option). Skipped entirely if any question
// already exists.
func SeedSurvey(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM question`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	return WithTx(db, func(tx *sql.Tx) error {
		for _, q := range seedQuestions {
			if _, err := tx.Exec(`
				INSERT INTO question (id, position, text) VALUES ($1, $2, $3)
			`, q.id, q.id, q.text); err != nil {
				return fmt.Errorf("failed to seed question %d: %w", q.id, err)
			}
			for i, text := range q.opts {
				// deterministic option ID: questionID*10 + position
				optID := q.id*10 + i + 1
				if _, err := tx.Exec(`
					INSERT INTO answer_option (id, question_id, position, text)
					VALUES ($1, $2, $3, $4)
				`, optID, q.id, i+1, text); err != nil {
					return fmt.Errorf("failed to seed option %d: %w", optID, err)
				}
				if _, err := tx.Exec(`
					INSERT INTO stat (question_id, answer_option_id, counter, percent)
					VALUES ($1, $2, 0, 0)
				`, q.id, optID); err != nil {
					return fmt.Errorf("failed to seed stat for option %d: %w", optID, err)
				}
			}
		}
		return nil
	})
}

// SeedAdmin creates the initial admin account when none exists.
func SeedAdmin(db *sql.DB, username, password string, iterations int) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admin_user`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return ErrAdminPasswordRequired
	}

	hash, salt, err := auth.HashPassword(password, iterations)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
		INSERT INTO admin_user (username, password_hash, password_salt, iteration_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, username, hash, salt, iterations, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	slog.Info("seeded admin user", "username", username)
	return nil
}

// SeedLink creates one active survey link if none is active.
func SeedLink(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM survey_link WHERE active`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count survey links: %w", err)
	}
	if count > 0 {
		return nil
	}

	code := auth.GenerateLinkCode()
	if _, err := db.Exec(`
		INSERT INTO survey_link (code, active, created_at) VALUES ($1, TRUE, $2)
	`, code, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to seed survey link: %w", err)
	}
	slog.Info("seeded survey link", "code", code)
	return nil
}
