package store_dynamodb

import (
	goerrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/errors"
	"github.com/pennsieve/playground-api/internal/models"
)

// Attribute names of the accounts table. id is the partition key.
const (
	IdAttribute          = "id"
	NameAttribute        = "name"
	BankNameAttribute    = "bank_name"
	OpenDateAttribute    = "open_date"
	CloseDateAttribute   = "close_date"
	AccountTypeAttribute = "account_type"
	StatusAttribute      = "status"
	BalancesAttribute    = "balances"
	DateAttribute        = "date"
	BalanceAttribute     = "balance"
	CodeAttribute        = "code"
	ValueAttribute       = "value"
)

// AccountRow is the stored shape of an account.
type AccountRow struct {
	Id          string       `dynamodbav:"id"`
	Name        string       `dynamodbav:"name"`
	BankName    string       `dynamodbav:"bank_name"`
	OpenDate    string       `dynamodbav:"open_date"`
	CloseDate   string       `dynamodbav:"close_date,omitempty"`
	AccountType string       `dynamodbav:"account_type"`
	Status      string       `dynamodbav:"status"`
	Balances    []BalanceRow `dynamodbav:"balances"`
}

type BalanceRow struct {
	Date    string      `dynamodbav:"date"`
	Balance CurrencyRow `dynamodbav:"balance"`
}

type CurrencyRow struct {
	Code  string  `dynamodbav:"code"`
	Value float64 `dynamodbav:"value"`
}

func NewAccountRow(account models.Account) AccountRow {
	row := AccountRow{
		Id:          account.Id,
		Name:        account.Name,
		BankName:    account.BankName,
		OpenDate:    FormatDate(account.OpenDate),
		AccountType: account.AccountType.String(),
		Status:      account.Status.String(),
		Balances:    make([]BalanceRow, 0, len(account.Balances)),
	}
	if account.CloseDate != nil {
		row.CloseDate = FormatDate(*account.CloseDate)
	}
	for _, b := range account.Balances {
		row.Balances = append(row.Balances, BalanceRow{
			Date: FormatDate(b.Date),
			Balance: CurrencyRow{
				Code:  b.Balance.Code.String(),
				Value: b.Balance.Value,
			},
		})
	}
	return row
}

// EncodeAccount is the inverse of DecodeAccount.
func EncodeAccount(account models.Account) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(NewAccountRow(account))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMarshaling, err)
	}
	return item, nil
}

// DecodeAccount converts one stored row into an Account. Every failure is a
// *DecodeError naming the row and attribute.
func DecodeAccount(item map[string]types.AttributeValue) (models.Account, error) {
	account, err := decodeAccount(item)
	if err != nil {
		var decodeErr *DecodeError
		if goerrors.As(err, &decodeErr) {
			decodeErr.RowId = account.Id
			return models.Account{}, decodeErr
		}
		return models.Account{}, &DecodeError{RowId: account.Id, Err: err}
	}
	return account, nil
}

// DecodeAccounts decodes items in order. Rows that fail to decode are left
// out of the result and reported in the returned errors, one per row.
func DecodeAccounts(items []map[string]types.AttributeValue) ([]models.Account, []*DecodeError) {
	accounts := make([]models.Account, 0, len(items))
	var decodeErrs []*DecodeError
	for _, item := range items {
		account, err := DecodeAccount(item)
		if err != nil {
			var decodeErr *DecodeError
			if !goerrors.As(err, &decodeErr) {
				decodeErr = &DecodeError{Err: err}
			}
			decodeErrs = append(decodeErrs, decodeErr)
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, decodeErrs
}

func decodeAccount(item map[string]types.AttributeValue) (models.Account, error) {
	var account models.Account
	var err error

	// id first so later failures can name the row
	if account.Id, err = requiredString(item, IdAttribute, ""); err != nil {
		return account, err
	}
	if account.Name, err = requiredString(item, NameAttribute, ""); err != nil {
		return account, err
	}
	if account.BankName, err = requiredString(item, BankNameAttribute, ""); err != nil {
		return account, err
	}

	openDate, err := requiredString(item, OpenDateAttribute, "")
	if err != nil {
		return account, err
	}
	if account.OpenDate, err = ParseDate(openDate); err != nil {
		return account, &DecodeError{Attribute: OpenDateAttribute, Err: err}
	}

	closeDate, ok, err := ExtractString(CloseDateAttribute, item)
	if err != nil {
		return account, err
	}
	if ok {
		t, err := ParseDate(closeDate)
		if err != nil {
			return account, &DecodeError{Attribute: CloseDateAttribute, Err: err}
		}
		account.CloseDate = &t
	}

	accountType, err := requiredString(item, AccountTypeAttribute, "")
	if err != nil {
		return account, err
	}
	if account.AccountType, err = models.ParseAccountType(accountType); err != nil {
		return account, &DecodeError{Attribute: AccountTypeAttribute, Err: err}
	}

	status, err := requiredString(item, StatusAttribute, "")
	if err != nil {
		return account, err
	}
	if account.Status, err = models.ParseAccountStatus(status); err != nil {
		return account, &DecodeError{Attribute: StatusAttribute, Err: err}
	}

	balances, _, err := ExtractList(BalancesAttribute, item)
	if err != nil {
		return account, err
	}
	account.Balances = make([]models.AccountBalance, 0, len(balances))
	for i, value := range balances {
		path := fmt.Sprintf("%s[%d]", BalancesAttribute, i)
		m, ok := value.(*types.AttributeValueMemberM)
		if !ok {
			return account, &DecodeError{
				Attribute: path,
				Err:       fmt.Errorf("%w: expected M, got %s", errors.ErrAttributeType, attributeTypeName(value)),
			}
		}
		balance, err := decodeBalance(m.Value, path)
		if err != nil {
			return account, err
		}
		account.Balances = append(account.Balances, balance)
	}

	return account, nil
}

func decodeBalance(item map[string]types.AttributeValue, path string) (models.AccountBalance, error) {
	var balance models.AccountBalance

	date, err := requiredString(item, DateAttribute, path)
	if err != nil {
		return balance, err
	}
	if balance.Date, err = ParseDate(date); err != nil {
		return balance, &DecodeError{Attribute: path + "." + DateAttribute, Err: err}
	}

	currencyPath := path + "." + BalanceAttribute
	currency, ok, err := ExtractMap(BalanceAttribute, item)
	if err != nil {
		return balance, prefixed(err, path)
	}
	if !ok {
		return balance, missing(currencyPath)
	}
	balance.Balance, err = decodeCurrency(currency, currencyPath)
	return balance, err
}

func decodeCurrency(item map[string]types.AttributeValue, path string) (models.Currency, error) {
	var currency models.Currency

	code, err := requiredString(item, CodeAttribute, path)
	if err != nil {
		return currency, err
	}
	if currency.Code, err = models.ParseCurrencyCode(code); err != nil {
		return currency, &DecodeError{Attribute: path + "." + CodeAttribute, Err: err}
	}

	value, ok, err := ExtractNumber(ValueAttribute, item)
	if err != nil {
		return currency, prefixed(err, path)
	}
	if !ok {
		return currency, missing(path + "." + ValueAttribute)
	}
	currency.Value = value

	return currency, nil
}

func requiredString(item map[string]types.AttributeValue, key string, path string) (string, error) {
	value, ok, err := ExtractString(key, item)
	if err != nil {
		return "", prefixed(err, path)
	}
	if !ok {
		return "", missing(join(path, key))
	}
	return value, nil
}

func missing(attribute string) error {
	return &DecodeError{Attribute: attribute, Err: errors.ErrMissingAttribute}
}

func prefixed(err error, path string) error {
	var decodeErr *DecodeError
	if path != "" && goerrors.As(err, &decodeErr) {
		decodeErr.Attribute = join(path, decodeErr.Attribute)
	}
	return err
}

func join(path string, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
