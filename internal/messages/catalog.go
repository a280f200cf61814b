// Package messages renders user-facing texts in English and Russian.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.Russian}

type entry struct {
	key Key
	en  string
	ru  string
}

// Amounts are passed pre-formatted as strings.
var entries = []entry{
	{KeyDepositCompleted, "Deposited %s TON. New balance: %s TON", "Баланс пополнен на %s TON. Новый баланс: %s TON"},
	{KeyDepositLocalOnly, "Balance updated locally, syncing may be delayed", "Баланс обновлен локально, но возможны проблемы с синхронизацией"},
	{KeyPurchaseCompleted, "You bought \"%s\" for %s TON. New balance: %s TON", "Вы купили \"%s\" за %s TON. Новый баланс: %s TON"},
	{KeyListingCreated, "Offer for \"%s\" at %s TON sent for review", "Предложение \"%s\" за %s TON отправлено на проверку"},
	{KeyItemPublished, "\"%s\" was submitted for listing", "\"%s\" отправлен на публикацию"},
	{KeyCardDepositRequested, "Deposit request sent: %s TON (%s ₽). It will be credited after the payment is checked", "Заявка на пополнение отправлена: %s TON (%s ₽). Пополнение будет подтверждено после проверки платежа"},
	{KeyWithdrawalSameDetails, "Withdrawals are only possible to the details used for depositing. Contact @%s", "Вывод возможен только на те же реквизиты, с которых проходило пополнение. Напишите @%s"},
	{KeyPartiallyFailed, "The operation was only partly saved. Your data will refresh shortly", "Операция сохранена не полностью. Данные скоро обновятся"},

	{KeyErrInsufficientFunds, "Insufficient funds", "Недостаточно средств"},
	{KeyErrInvalidAmount, "Enter a valid amount", "Введите корректную сумму"},
	{KeyErrInvalidCard, "Enter a valid card number", "Введите корректный номер карты"},
	{KeyErrItemNotFound, "Gift not found", "Подарок не найден"},
	{KeyErrAlreadyOwned, "You already own this gift", "Вы уже владеете этим NFT"},
	{KeyErrNotOwner, "You do not own this gift or it is already listed", "Вы не владеете этим NFT или он уже выставлен на продажу"},
	{KeyErrInvalidPrice, "Price must be between 1 and 1,000,000 TON", "Цена должна быть от 1 до 1 000 000 TON"},
	{KeyErrInvalidTitle, "Enter a title", "Введите название"},
	{KeyErrInvalidOrigin, "Unknown gift origin", "Неизвестный источник подарка"},
	{KeyErrUnknownIdentity, "Could not identify the user", "Не удалось определить пользователя"},
	{KeyErrSessionNotFound, "Session expired, reopen the app", "Сессия истекла, откройте приложение заново"},
	{KeyErrRemoteUnavailable, "Server unavailable, try again", "Сервер недоступен, попробуйте снова"},
	{KeyErrMalformedRecord, "Received damaged data", "Получены поврежденные данные"},
	{KeyErrUserNotFound, "User not found", "Пользователь не найден"},
	{KeyErrPurchaseAborted, "Purchase failed, try again", "Ошибка при покупке. Попробуйте снова"},
	{KeyErrInvalidInput, "Invalid request", "Некорректный запрос"},
	{KeyErrInternal, "Something went wrong", "Что-то пошло не так"},
}

// Translator selects a language and renders messages in it
type Translator struct {
	catalog *catalog.Builder
	matcher language.Matcher
}

// New builds the translator with every message registered in both languages
func New() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range entries {
		// SetString only fails for malformed tags
		_ = b.SetString(language.English, string(e.key), e.en)
		_ = b.SetString(language.Russian, string(e.key), e.ru)
	}
	return &Translator{catalog: b, matcher: language.NewMatcher(supported)}
}

// Match picks the supported language for the first preference that parses,
// accepting Telegram language codes ("ru") and Accept-Language headers.
// English is the default.
func (t *Translator) Match(prefs ...string) language.Tag {
	for _, pref := range prefs {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := t.matcher.Match(tags...)
		if conf != language.No {
			return supported[idx]
		}
	}
	return language.English
}

// Text renders key in lang
func (t *Translator) Text(lang language.Tag, key Key, args ...interface{}) string {
	p := message.NewPrinter(lang, message.Catalog(t.catalog))
	return p.Sprintf(string(key), args...)
}

// Error renders the message for err in lang
func (t *Translator) Error(lang language.Tag, err error) string {
	return t.Text(lang, KeyForError(err))
}
