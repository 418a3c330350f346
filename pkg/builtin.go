package rpn

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

type funcDefinition = func(mod *ir.Module) *ir.Func

var builtinTable = map[string]funcDefinition{
	"print": builtinPrint,
}

func defineBuiltins(b *LLVMIRBuilder) {
	for name, definition := range builtinTable {
		f := definition(b.mod)
		f.SetName(name)
		b.builtins.Set(name, f)
	}
}

// builtinPrint writes its i32 argument and a newline through libc printf.
func builtinPrint(mod *ir.Module) *ir.Func {
	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	format := constant.NewCharArrayFromString("%d\n\x00")
	global := mod.NewGlobalDef(".fmt.i32", format)
	global.Immutable = true

	zero := constant.NewInt(types.I64, 0)
	formatPtr := constant.NewGetElementPtr(format.Typ, global, zero, zero)

	f := mod.NewFunc("", types.Void, ir.NewParam("v", types.I32))
	entry := f.NewBlock("")
	entry.NewCall(printf, formatPtr, f.Params[0])
	entry.NewRet(nil)

	return f
}
