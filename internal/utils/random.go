package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
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

func GenerateRandomEmployee(password string, emailDomainName string, locationID int64) (*domain.User, error) {
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
		Role:         domain.RoleEmployee,
		LocationID:   &locationID,
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

// 用 Fisher-Yates 洗牌算法来生成随机的模板适用天数
func GenerateRandomApplicableDays() []int32 {
	days := []int32{1, 2, 3, 4, 5, 6, 7}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

var positions = []string{"收银", "导购", "仓管", "保洁"}

func GenerateRandomShiftTemplate(locationID int64) *domain.ShiftTemplate {
	// 把一天切成早中晚三段中的随机一段
	segment := rand.Intn(3)
	startHour := 8 + segment*4
	endHour := startHour + 4 + rand.Intn(4)
	if endHour > 23 {
		endHour = 23
	}

	return &domain.ShiftTemplate{
		LocationID:     locationID,
		Name:           "班次模板" + GenerateRandomID(3, 3),
		Position:       positions[rand.Intn(len(positions))],
		ApplicableDays: GenerateRandomApplicableDays(),
		StartTime:      fmt.Sprintf("%02d:00:00", startHour),
		EndTime:        fmt.Sprintf("%02d:00:00", endHour),
		RequiredNumber: int32(rand.Intn(4) + 1),
		IsActive:       true,
	}
}

func GenerateRandomCompany() *domain.Company {
	return &domain.Company{
		Name: "公司" + GenerateRandomID(3, 3),
	}
}

func GenerateRandomLocation(companyID int64) *domain.Location {
	return &domain.Location{
		CompanyID: companyID,
		Name:      "门店" + GenerateRandomID(3, 3),
		Address:   "地址" + GenerateRandomID(10, 5),
	}
}

// 随机生成一段不和已有记录重叠的时间记录，生成失败时返回 nil
func GenerateRandomAvailability(employeeID int64, existing []*domain.EmployeeAvailability) *domain.EmployeeAvailability {
	for attempt := 0; attempt < 10; attempt++ {
		start := time.Now().AddDate(0, 0, rand.Intn(60))
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, rand.Intn(7))

		overlapped := false
		for _, record := range existing {
			if !start.After(record.EndDate) && !end.Before(record.StartDate) {
				overlapped = true
				break
			}
		}
		if overlapped {
			continue
		}

		kind := domain.AvailabilityKindAvailable
		if rand.Intn(2) == 0 {
			kind = domain.AvailabilityKindUnavailable
		}

		return &domain.EmployeeAvailability{
			EmployeeID: employeeID,
			StartDate:  start,
			EndDate:    end,
			Kind:       kind,
		}
	}

	return nil
}
