package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/oleglomako/chatwarden/internal/domain"
)

const callbackShowRules = "show_rules"

const helloText = "🛠 Помощь по использованию бота-модератора\n\n" +
	"📎 Команды:\n" +
	"/start — приветствие и описание бота\n" +
	"/help — показать это сообщение\n" +
	"/stats — статистика по чату (только для админов)\n" +
	"/rules — правила чата\n" +
	"---\n\n" +
	"🔍 Функции модерации:\n" +
	"- Автоматическое удаление сообщений с нецензурной лексикой\n" +
	"- Фильтрация спама и нежелательных ссылок\n" +
	"- Логирование всех действий в базу данных\n" +
	"---\n\n" +
	"⚙️ Настройка:\n" +
	"1. Добавьте бота в группу\n" +
	"2. Дайте боту права администратора\n" +
	"3. Включите право \"Удаление сообщений\"\n\n" +
	"---\n\n" +
	"📊 Примечание:\n" +
	"Все действия бота записываются в логи для анализа."

const rulesText = "<b>Правила чата:</b>\n" +
	"1. Запрещена нецензурная лексика и оскорбления.\n" +
	"2. Не спамить и не размещать нежелательные ссылки.\n" +
	"3. Соблюдайте уважение к участникам и администрации.\n" +
	"4. Не нарушайте законы РФ и правила Telegram.\n" +
	"5. Администрация оставляет за собой право удалять сообщения и участников без объяснения причин."

const (
	deniedText        = "Только администраторы могут просматривать статистику."
	statsErrorText    = "❌ Ошибка при получении статистики."
	unknownButtonText = "Неизвестная кнопка."
)

// warningText names the offender in the public deletion notice.
func warningText(userName string) string {
	return fmt.Sprintf("⚠️ <b>Внимание!</b>\nПользователь %s, использование нецензурной лексики запрещено в этом чате. Сообщение удалено.", userName)
}

// statsText renders a ChatStats snapshot for the /stats reply.
func statsText(stats domain.ChatStats) string {
	return fmt.Sprintf(
		"📊 <b>Статистика чата</b>\n\n"+
			"📈 <b>Общая статистика:</b>\n"+
			"• Всего действий: %d\n"+
			"• Удалено сообщений: %d\n"+
			"• Уникальных пользователей: %d\n\n"+
			"👮‍♂️ Бот активно работает и ведёт полную статистику всех действий.",
		stats.TotalActions, stats.DeletedMessages, stats.UniqueUsers,
	)
}

// rulesKeyboard is the inline keyboard attached to greetings.
func rulesKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "Показать правила", CallbackData: callbackShowRules}},
		},
	}
}
