package code

// 全局业务状态码注册表
// 成功码与失败码分段管理，新增时向后顺延
var (
	Success = NewSuss(0, lang{"Success", "成功"})
	Failed  = NewError(1, lang{"Failed", "失败"})

	ErrorInvalidParams   = NewError(10000001, lang{"Invalid Request Parameters", "请求参数错误"})
	ErrorNotFoundAPI     = NewError(10000002, lang{"API Not Found", "接口不存在"})
	ErrorTooManyRequests = NewError(10000003, lang{"Too Many Requests", "请求过多"})
	ErrorServerInternal  = NewError(10000004, lang{"Server Internal Error", "服务内部错误"})
	ErrorDBQuery         = NewError(10000005, lang{"Database Query Error", "数据库查询错误"})

	ErrorNotUserAuthToken     = NewError(10010001, lang{"User Authorization Token Not Provided", "未提供用户授权令牌"})
	ErrorInvalidUserAuthToken = NewError(10010002, lang{"Invalid User Authorization Token", "用户授权令牌无效"})
	ErrorUserNotFound         = NewError(10010003, lang{"User Not Found", "用户不存在"})
	ErrorUserLoginFailed      = NewError(10010004, lang{"Incorrect Email Or Password", "邮箱或密码错误"})
	ErrorUserAlreadyExists    = NewError(10010005, lang{"User Already Exists", "用户已存在"})
	ErrorUserRegisterDisabled = NewError(10010006, lang{"User Registration Is Disabled", "用户注册已关闭"})

	ErrorNoteNotFound     = NewError(10020001, lang{"Note Not Found", "笔记不存在"})
	ErrorNoteCreateFailed = NewError(10020002, lang{"Note Create Failed", "笔记创建失败"})
	ErrorNoteModifyFailed = NewError(10020003, lang{"Note Modify Failed", "笔记修改失败"})
	ErrorNoteDeleteFailed = NewError(10020004, lang{"Note Delete Failed", "笔记删除失败"})
	ErrorNoteListFailed   = NewError(10020005, lang{"Note List Failed", "笔记列表获取失败"})

	ErrorViewportSaveFailed = NewError(10030001, lang{"Viewport Save Failed", "视口保存失败"})
)
