package code

// 通用状态码
var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(1, lang{en: "Failed", zh_cn: "失败"})

	ErrorInvalidParams  = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})
	ErrorServerInternal = NewError(10002, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFound       = NewError(10003, lang{en: "Record not found", zh_cn: "记录不存在"})
	ErrorNotFoundAPI    = NewError(10004, lang{en: "API not found", zh_cn: "接口不存在"})
)

// 日志数据层状态码
var (
	// ErrorTooManyAttachments 单条记录的图片附件超过上限
	ErrorTooManyAttachments = NewError(20001, lang{en: "You can't add more than 3 photos", zh_cn: "最多只能添加 3 张图片"})
	// ErrorNotEditable 非文本条目不允许编辑
	ErrorNotEditable = NewError(20002, lang{en: "This item can not be edited", zh_cn: "该条目不可编辑"})
	// ErrorPersistenceFailed 持久化写入失败，内存状态保持不变
	ErrorPersistenceFailed = NewError(20003, lang{en: "Error saving data", zh_cn: "数据保存失败"})
	// ErrorClassifierUnavailable 情感分类模型不可用
	ErrorClassifierUnavailable = NewError(20004, lang{en: "Can't load sentiment model", zh_cn: "情感模型加载失败"})
	// ErrorMediaStoreFailed 附件存储失败
	ErrorMediaStoreFailed = NewError(20005, lang{en: "Error saving attachment", zh_cn: "附件保存失败"})
)
