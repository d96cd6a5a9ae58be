package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 类型错误：NON_NUMERIC（非数值数据进入缩放/重塑，致命）
//   - 形状错误：SHAPE_MISMATCH（行长不能被深度整除，致命）
//   - 配置错误：MISSING_COLUMN / INVALID_INPUT
//   - 存储错误：NOT_FOUND
type DomainError struct {
	Code    string // 错误代码（如 "NON_NUMERIC", "SHAPE_MISMATCH"）
	Message string // 错误消息
	Module  string // 模块名称（如 "frame", "window", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNonNumeric    = "NON_NUMERIC"    // 非数值数据进入数值运算
	ErrorCodeShapeMismatch = "SHAPE_MISMATCH" // 形状/行长不匹配
	ErrorCodeMissingColumn = "MISSING_COLUMN" // 期望的列不存在
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleFrame   = "frame"   // 表/列模块
	ModuleWindow  = "window"  // 窗口化模块
	ModuleFilter  = "filter"  // 过滤模块
	ModuleReshape = "reshape" // 重塑模块
	ModuleStore   = "store"   // 存储模块
	ModuleIngest  = "ingest"  // 导入模块
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNonNumeric 检查错误是否为 NON_NUMERIC（类型错误，致命）
func IsNonNumeric(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNonNumeric
	}
	return false
}

// IsShapeMismatch 检查错误是否为 SHAPE_MISMATCH（形状错误，致命）
func IsShapeMismatch(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeShapeMismatch
	}
	return false
}

// IsMissingColumn 检查错误是否为 MISSING_COLUMN
func IsMissingColumn(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeMissingColumn
	}
	return false
}
